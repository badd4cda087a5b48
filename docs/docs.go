// Package docs registers the OpenAPI description served under /swagger.
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
        "/tournaments": {
            "get": {"tags": ["tournaments"], "summary": "List tournaments", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["tournaments"], "summary": "Create a tournament with its categories", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "422": {"description": "Validation failed"}}}
        },
        "/tournaments/overview": {
            "get": {"tags": ["tournaments"], "summary": "List tournament overviews", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/tournaments/{tournamentID}": {
            "get": {"tags": ["tournaments"], "summary": "Get a tournament", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["tournaments"], "summary": "Delete a tournament", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/tournaments/{tournamentID}/draw": {
            "post": {"tags": ["tournaments"], "summary": "Draw zones for every category whose registration is closed", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "No category ready to draw"}}}
        },
        "/tournaments/{tournamentID}/categories": {
            "post": {"tags": ["tournaments"], "summary": "Add a category to a tournament", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/tournaments/{tournamentID}/categories/{categoryID}": {
            "get": {"tags": ["categories"], "summary": "Get a category with its zones and playoff rounds", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}, {"type": "string", "name": "categoryID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/tournaments/{tournamentID}/categories/{categoryID}/teams": {
            "post": {"tags": ["categories"], "summary": "Register a pair in a category", "responses": {"201": {"description": "Created"}, "409": {"description": "Registration closed"}}}
        },
        "/tournaments/{tournamentID}/categories/{categoryID}/matches/{matchID}/score": {
            "put": {"tags": ["categories"], "summary": "Record the score of a zone or playoff match", "responses": {"200": {"description": "OK"}, "409": {"description": "Wrong status"}, "422": {"description": "Invalid score"}}}
        },
        "/tournaments/{tournamentID}/categories/{categoryID}/playoffs": {
            "post": {"tags": ["categories"], "summary": "Close zone play and build the first playoff round", "responses": {"200": {"description": "OK"}}}
        },
        "/tournaments/{tournamentID}/categories/{categoryID}/advance": {
            "post": {"tags": ["categories"], "summary": "Build the next playoff round", "responses": {"200": {"description": "OK"}}}
        },
        "/tournaments/{tournamentID}/categories/{categoryID}/finish": {
            "post": {"tags": ["categories"], "summary": "Record the final placements", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pairs Tournament API",
	Description:      "Zones, standings and elimination brackets for pairs tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
