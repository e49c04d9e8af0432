// Package docs содержит OpenAPI-описание Mapify API, которое http-swagger отдаёт на /swagger/.
// Поддерживается вручную по godoc-аннотациям хендлеров (формат swag init).
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Статус сервиса",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SystemStats"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Регистрация нового пользователя",
                "parameters": [
                    {"description": "Данные регистрации", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Авторизация пользователя",
                "parameters": [
                    {"description": "Данные для входа", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/auth/forgot-password": {
            "post": {
                "description": "Отправляет письмо со ссылкой для сброса пароля. Ответ одинаковый, даже если e-mail не найден.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["password"],
                "summary": "Запрос восстановления пароля",
                "parameters": [
                    {"description": "Email пользователя", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.forgotReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/auth/reset-password": {
            "post": {
                "description": "Устанавливает новый пароль по токену из письма. Токен одноразовый.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["password"],
                "summary": "Сброс пароля по токену",
                "parameters": [
                    {"description": "Токен и новый пароль", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.resetReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/places": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["places"],
                "summary": "Список всех мест",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Place"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["places"],
                "summary": "Создать место",
                "parameters": [
                    {"description": "Данные места", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.createPlaceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Place"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/places/{id}": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Переданные поля заменяют существующие, остальные не меняются.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["places"],
                "summary": "Обновить место (частично)",
                "parameters": [
                    {"type": "integer", "description": "ID места", "name": "id", "in": "path", "required": true},
                    {"description": "Изменяемые поля", "name": "input", "in": "body", "required": false, "schema": {"$ref": "#/definitions/models.PlaceInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Place"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["places"],
                "summary": "Удалить место",
                "parameters": [
                    {"type": "integer", "description": "ID места", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/models.UserResponse"}
            }
        },
        "handlers.createPlaceRequest": {
            "type": "object",
            "required": ["lat", "lon", "name"],
            "properties": {
                "address": {"type": "string"},
                "description": {"type": "string"},
                "imageUrl": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "name": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "handlers.forgotReq": {
            "type": "object",
            "required": ["email"],
            "properties": {"email": {"type": "string"}}
        },
        "handlers.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.registerRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.resetReq": {
            "type": "object",
            "required": ["password", "token"],
            "properties": {"password": {"type": "string"}, "token": {"type": "string"}}
        },
        "helpers.ErrorResponse": {
            "type": "object",
            "properties": {"details": {"type": "string"}, "error": {"type": "string"}}
        },
        "helpers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "models.Place": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "created_at": {"type": "string"},
                "created_by": {"type": "integer"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "imageUrl": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "name": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.PlaceInput": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "description": {"type": "string"},
                "imageUrl": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "name": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.SystemStats": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "totalPlaces": {"type": "integer"},
                "totalUsers": {"type": "integer"}
            }
        },
        "models.UserResponse": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "id": {"type": "integer"}, "name": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Mapify API",
	Description:      "Регистрация, вход (JWT), сброс пароля и пользовательские места на карте.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
