package word_mapping

import (
	"testing"

	"datastandard-service/service/models"

	"github.com/stretchr/testify/assert"
)

func vocab(pairs ...string) []models.VocabularyEntry {
	var entries []models.VocabularyEntry
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, models.VocabularyEntry{StandardName: pairs[i], Abbreviation: pairs[i+1], EnglishName: pairs[i+1]})
	}
	return entries
}

func TestSplitParts(t *testing.T) {
	assert.Equal(t, []string{"사용자", "이름"}, SplitParts(" 사용자 __이름_ "))
	assert.Empty(t, SplitParts("___"))
	assert.Equal(t, []string{"USER"}, SplitParts("USER"))
}

func TestCheckTermMapping_AllPartsMapped(t *testing.T) {
	vocabulary := BuildVocabularyMap(vocab("사용자", "USER", "이름", "NAME"))
	domains := BuildDomainMap([]models.DomainEntry{{StandardDomainName: "명_VARCHAR(100)"}})

	result := CheckTermMapping("사용자_이름", "USER_NAME", " 명_varchar(100) ", vocabulary, domains)

	assert.True(t, result.IsMappedTerm)
	assert.True(t, result.IsMappedColumn)
	assert.True(t, result.IsMappedDomain)
	assert.Empty(t, result.UnmappedTermParts)
	assert.Empty(t, result.UnmappedColumnParts)
}

func TestCheckTermMapping_RemovingWordFlipsFlags(t *testing.T) {
	vocabulary := BuildVocabularyMap(vocab("사용자", "USER"))

	first := CheckTermMapping("사용자_이름", "USER_NAME", "", vocabulary, DomainMap{})
	second := CheckTermMapping("사용자_이름", "USER_NAME", "", vocabulary, DomainMap{})

	assert.False(t, first.IsMappedTerm)
	assert.False(t, first.IsMappedColumn)
	assert.False(t, first.IsMappedDomain)
	assert.Equal(t, []string{"이름"}, first.UnmappedTermParts)
	assert.Equal(t, []string{"NAME"}, first.UnmappedColumnParts)
	assert.Equal(t, first, second)
}

func TestCheckTermMapping_MergedLookup(t *testing.T) {
	// 缩写与标准单词名共用查找表：列名部分写成标准单词名也算已映射
	vocabulary := BuildVocabularyMap(vocab("사용자", "USER", "이름", "NAME"))

	result := CheckTermMapping("USER_NAME", "사용자_이름", "", vocabulary, DomainMap{})
	assert.True(t, result.IsMappedTerm)
	assert.True(t, result.IsMappedColumn)
}

func TestVocabularyMap_Abbreviations(t *testing.T) {
	vocabulary := BuildVocabularyMap(vocab("번호", "NO", "번호", "NUM", "NO", "NO"))
	assert.Equal(t, []string{"no", "num"}, vocabulary.Abbreviations("번호"))
	assert.True(t, vocabulary.Has(" num "))
}

func TestMappingResult_ApplyTo(t *testing.T) {
	entry := &models.TermEntry{TermName: "사용자_이름"}
	result := MappingResult{IsMappedTerm: true, IsMappedColumn: true, UnmappedTermParts: []string{}}

	assert.True(t, result.ApplyTo(entry))
	assert.True(t, entry.IsMappedTerm)
	assert.Nil(t, entry.UnmappedTermParts)
	assert.False(t, result.ApplyTo(entry))
}
