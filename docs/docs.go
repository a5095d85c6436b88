// Package docs registers the OpenAPI description served at /swagger/*any.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/login": {
            "post": {"tags": ["auth"], "summary": "로그인 (JWT 발급)", "security": [],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/work-reports": {
            "get": {"tags": ["attendance"], "summary": "작업일지 목록",
                "parameters": [
                    {"name": "worker_id", "in": "query", "type": "integer"},
                    {"name": "site_id", "in": "query", "type": "integer"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["attendance"], "summary": "작업일지 공수 입력 (upsert)",
                "responses": {"200": {"description": "Updated"}, "201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/workers/{worker_id}/labor-hours/monthly": {
            "get": {"tags": ["attendance"], "summary": "월별 공수 집계",
                "parameters": [
                    {"name": "worker_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "type": "string", "description": "YYYY-MM"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/workers/{worker_id}/labor-hours/range": {
            "get": {"tags": ["attendance"], "summary": "기간별 공수 집계",
                "parameters": [
                    {"name": "worker_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/workers/{worker_id}/payroll": {
            "get": {"tags": ["payroll"], "summary": "작업자 월 급여 계산",
                "parameters": [
                    {"name": "worker_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/workers/{worker_id}/payslips": {
            "post": {"tags": ["payroll"], "summary": "급여명세서 발급 (admin)",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Already issued"}}}
        },
        "/payroll/summary": {
            "get": {"tags": ["payroll"], "summary": "월 급여 요약",
                "parameters": [
                    {"name": "month", "in": "query", "required": true, "type": "string"},
                    {"name": "site_id", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/payroll/export.xlsx": {
            "get": {"tags": ["payroll"], "summary": "급여대장 엑셀 출력 (admin)",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/holidays": {
            "get": {"tags": ["calendar"], "summary": "공휴일 목록",
                "parameters": [{"name": "year", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"https"},
	Title:            "INOPNC API",
	Description:      "건설현장 작업일지 공수 집계 및 급여 API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
