// Package swagger holds the OpenAPI description served at /swagger.
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/files": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "List Files",
                "parameters": [
                    {"type": "string", "description": "Key prefix", "name": "prefix", "in": "query"},
                    {"type": "string", "description": "Grouping delimiter", "name": "delimiter", "in": "query"},
                    {"type": "string", "description": "Start listing after this key", "name": "start_after", "in": "query"},
                    {"type": "string", "description": "Token from a previous page", "name": "continuation_token", "in": "query"},
                    {"type": "integer", "description": "Page size, at most 1000", "name": "max_keys", "in": "query"},
                    {"type": "boolean", "description": "Include object owners", "name": "fetch_owner", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "put": {
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Upload File",
                "description": "Stores the raw request body under the given key in a single request.",
                "parameters": [
                    {"type": "string", "description": "Object key", "name": "key", "in": "query", "required": true},
                    {"type": "string", "description": "Storage class", "name": "X-Storage-Class", "in": "header"},
                    {"type": "string", "description": "AES256 or none", "name": "X-Encryption", "in": "header"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Delete File",
                "parameters": [
                    {"type": "string", "description": "Object key", "name": "key", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/files/batch-delete": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Batch Delete Files",
                "description": "Deletes keys in chunks of 1000. Per-object failures are reported in the result.",
                "parameters": [
                    {"description": "Keys to delete", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/files.BatchDeleteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/files/download": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["files"],
                "summary": "Download File",
                "parameters": [
                    {"type": "string", "description": "Object key", "name": "key", "in": "query", "required": true},
                    {"type": "string", "description": "bytes=start-end", "name": "Range", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "206": {"description": "Partial Content", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/files/exists": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Check File Exists",
                "parameters": [
                    {"type": "string", "description": "Object key", "name": "key", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/files/metadata": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Get File Metadata",
                "parameters": [
                    {"type": "string", "description": "Object key", "name": "key", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/files/sign": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Sign URL",
                "parameters": [
                    {"description": "Sign request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/files.SignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "files.BatchDeleteRequest": {
            "type": "object",
            "properties": {
                "keys": {"type": "array", "items": {"type": "string"}}
            }
        },
        "files.SignRequest": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "operation": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "response.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "error": {"type": "string"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "filevault API",
	Description:      "HTTP access to an S3-compatible bucket.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
