// Package docs 注册 Swagger 文档
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["系统"], "summary": "健康检查", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["系统"], "summary": "就绪检查", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/api/{catalog}": {
            "get": {
                "tags": ["目录"], "summary": "目录条目列表", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "catalog", "in": "path", "required": true},
                    {"type": "string", "name": "filename", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "sortBy", "in": "query"},
                    {"type": "string", "name": "sortOrder", "in": "query"},
                    {"type": "string", "name": "query", "in": "query"},
                    {"type": "string", "name": "field", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.APIResponse"}}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "tags": ["目录"], "summary": "新建目录条目", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "catalog", "in": "path", "required": true},
                    {"type": "string", "name": "filename", "in": "query"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            },
            "put": {
                "tags": ["目录"], "summary": "更新目录条目", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "catalog", "in": "path", "required": true},
                    {"type": "string", "name": "filename", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["目录"], "summary": "删除目录条目", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "catalog", "in": "path", "required": true},
                    {"type": "string", "name": "id", "in": "query", "required": true},
                    {"type": "boolean", "name": "force", "in": "query"},
                    {"type": "string", "name": "filename", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/{catalog}/{id}": {
            "get": {
                "tags": ["目录"], "summary": "目录条目详情", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "catalog", "in": "path", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "filename", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/{catalog}/files": {
            "get": {"tags": ["文件"], "summary": "目录文件列表", "parameters": [{"type": "string", "name": "catalog", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["文件"], "summary": "新建目录文件", "parameters": [{"type": "string", "name": "catalog", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}},
            "put": {"tags": ["文件"], "summary": "重命名目录文件", "parameters": [{"type": "string", "name": "catalog", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["文件"], "summary": "删除目录文件", "parameters": [{"type": "string", "name": "catalog", "in": "path", "required": true}, {"type": "string", "name": "filename", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/{catalog}/upload": {
            "post": {
                "tags": ["目录"], "summary": "表格导入", "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "catalog", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "filename", "in": "query"},
                    {"type": "boolean", "name": "replace", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/{catalog}/download": {
            "get": {"tags": ["目录"], "summary": "表格导出", "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "parameters": [{"type": "string", "name": "catalog", "in": "path", "required": true}, {"type": "string", "name": "filename", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/{catalog}/history": {
            "get": {"tags": ["目录"], "summary": "目录审计日志", "parameters": [{"type": "string", "name": "catalog", "in": "path", "required": true}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/term/validate": {
            "post": {"tags": ["术语"], "summary": "术语校验(不保存)", "parameters": [{"type": "string", "name": "filename", "in": "query"}, {"type": "string", "name": "entryId", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/api/term/validate-all": {
            "get": {"tags": ["术语"], "summary": "术语全量校验", "parameters": [{"type": "string", "name": "filename", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/term/sync": {
            "post": {"tags": ["术语"], "summary": "术语映射同步", "parameters": [{"type": "boolean", "name": "apply", "in": "query"}, {"type": "string", "name": "filename", "in": "query"}, {"type": "string", "name": "vocabularyFile", "in": "query"}, {"type": "string", "name": "domainFile", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/term/mapping": {
            "get": {"tags": ["术语"], "summary": "术语文件映射", "parameters": [{"type": "string", "name": "filename", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["术语"], "summary": "更新术语文件映射", "parameters": [{"type": "string", "name": "filename", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/vocabulary/sync-domain": {
            "post": {"tags": ["同步"], "summary": "标准单词-域同步", "parameters": [{"type": "boolean", "name": "apply", "in": "query"}, {"type": "string", "name": "vocabularyFile", "in": "query"}, {"type": "string", "name": "domainFile", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/column/sync-term": {
            "get": {"tags": ["同步"], "summary": "列-术语同步状态", "parameters": [{"type": "string", "name": "columnFile", "in": "query"}, {"type": "string", "name": "termFile", "in": "query"}, {"type": "string", "name": "domainFile", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["同步"], "summary": "列-术语同步", "parameters": [{"type": "boolean", "name": "apply", "in": "query"}, {"type": "string", "name": "columnFile", "in": "query"}, {"type": "string", "name": "termFile", "in": "query"}, {"type": "string", "name": "domainFile", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/erd/relations/validate": {
            "get": {"tags": ["关系"], "summary": "设计套件关系校验", "responses": {"200": {"description": "OK"}}}
        },
        "/api/erd/relations/sync": {
            "post": {"tags": ["关系"], "summary": "设计套件关系同步", "parameters": [{"type": "boolean", "name": "apply", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/validation/report": {
            "get": {"tags": ["对齐"], "summary": "统一校验报告", "parameters": [{"type": "string", "name": "termFile", "in": "query"}], "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        },
        "/api/alignment/sync": {
            "post": {"tags": ["对齐"], "summary": "目录对齐", "parameters": [{"type": "boolean", "name": "apply", "in": "query"}], "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        },
        "/api/alignment/schedule": {
            "get": {"tags": ["对齐"], "summary": "定时对齐状态", "responses": {"200": {"description": "OK"}}}
        },
        "/api/meta/catalog-types": {
            "get": {"tags": ["元数据"], "summary": "获取目录类型元数据", "responses": {"200": {"description": "OK"}}}
        },
        "/api/meta/term-rules": {
            "get": {"tags": ["元数据"], "summary": "获取术语校验规则元数据", "responses": {"200": {"description": "OK"}}}
        },
        "/api/meta/report-levels": {
            "get": {"tags": ["元数据"], "summary": "获取统一报告级别元数据", "responses": {"200": {"description": "OK"}}}
        },
        "/api/meta/sheets/{catalog}": {
            "get": {"tags": ["元数据"], "summary": "获取表格模板列定义", "parameters": [{"type": "string", "name": "catalog", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    },
    "definitions": {
        "controllers.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {},
                "error": {"type": "string"},
                "message": {"type": "string", "example": "처리되었습니다"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "数据标准目录服务 API",
	Description:      "标准单词、域、术语与数据库设计目录的管理、校验与对齐服务",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
