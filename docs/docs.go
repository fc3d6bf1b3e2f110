package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/": {
            "get": {
                "tags": ["misc"],
                "summary": "Welcome message",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": { "$ref": "#/definitions/ports.MessageResponse" }
                    }
                }
            }
        },
        "/recipes": {
            "get": {
                "tags": ["recipes"],
                "summary": "List recipes",
                "description": "Get every recipe in stored order",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": { "$ref": "#/definitions/entities.Recipe" }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": { "$ref": "#/definitions/ports.ErrorResponse" }
                    }
                }
            },
            "post": {
                "tags": ["recipes"],
                "summary": "Create a recipe",
                "description": "Append a recipe; the server assigns the id",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Recipe data",
                        "required": true,
                        "schema": { "$ref": "#/definitions/ports.RecipeRequest" }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": { "$ref": "#/definitions/entities.Recipe" }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": { "$ref": "#/definitions/ports.ErrorResponse" }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": { "$ref": "#/definitions/ports.ErrorResponse" }
                    }
                }
            }
        },
        "/recipes/{recipe_id}": {
            "get": {
                "tags": ["recipes"],
                "summary": "Get recipe by ID",
                "produces": ["application/json"],
                "parameters": [
                    { "in": "path", "name": "recipe_id", "type": "integer", "required": true, "description": "Recipe ID" }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": { "$ref": "#/definitions/entities.Recipe" }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": { "$ref": "#/definitions/ports.ErrorResponse" }
                    }
                }
            },
            "put": {
                "tags": ["recipes"],
                "summary": "Replace a recipe",
                "description": "Replace every field of a recipe; the stored id is the path id",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    { "in": "path", "name": "recipe_id", "type": "integer", "required": true, "description": "Recipe ID" },
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Recipe data",
                        "required": true,
                        "schema": { "$ref": "#/definitions/ports.RecipeRequest" }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": { "$ref": "#/definitions/entities.Recipe" }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": { "$ref": "#/definitions/ports.ErrorResponse" }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": { "$ref": "#/definitions/ports.ErrorResponse" }
                    }
                }
            },
            "delete": {
                "tags": ["recipes"],
                "summary": "Delete a recipe",
                "produces": ["application/json"],
                "parameters": [
                    { "in": "path", "name": "recipe_id", "type": "integer", "required": true, "description": "Recipe ID" }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": { "$ref": "#/definitions/ports.StatusResponse" }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": { "$ref": "#/definitions/ports.ErrorResponse" }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": { "description": "Server is running" }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness check",
                "description": "Ready when the recipe file can be loaded",
                "responses": {
                    "200": { "description": "Store readable" },
                    "503": { "description": "Store unreadable" }
                }
            }
        }
    },
    "definitions": {
        "entities.Recipe": {
            "type": "object",
            "properties": {
                "id": { "type": "integer", "example": 1 },
                "name": { "type": "string", "example": "Pancakes" },
                "ingredients": {
                    "type": "array",
                    "items": { "type": "string" },
                    "example": ["flour", "egg", "milk"]
                }
            }
        },
        "ports.RecipeRequest": {
            "type": "object",
            "required": ["name", "ingredients"],
            "properties": {
                "id": { "type": "integer", "description": "ignored" },
                "name": { "type": "string", "example": "Tea" },
                "ingredients": {
                    "type": "array",
                    "items": { "type": "string" },
                    "example": ["water", "tea leaves"]
                }
            }
        },
        "ports.MessageResponse": {
            "type": "object",
            "properties": {
                "message": { "type": "string" }
            }
        },
        "ports.StatusResponse": {
            "type": "object",
            "properties": {
                "status": { "type": "string", "example": "success" },
                "message": { "type": "string", "example": "Recipe deleted successfully" }
            }
        },
        "ports.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Recipe Keeper API",
	Description:      "CRUD over a collection of recipes kept in a JSON file",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
