package handlers

import (
	"net/http"

	"github.com/username/policyfeed/src/utils"
)

func queryParam(name, typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"in":          "query",
		"required":    false,
		"description": description,
		"schema":      map[string]string{"type": typ},
	}
}

func getOperation(summary string, params []map[string]interface{}, responses map[string]string) map[string]interface{} {
	resp := map[string]interface{}{}
	for code, desc := range responses {
		resp[code] = map[string]string{"description": desc}
	}
	op := map[string]interface{}{"summary": summary, "responses": resp}
	if len(params) > 0 {
		op["parameters"] = params
	}
	return map[string]interface{}{"get": op}
}

var feedParams = []map[string]interface{}{
	queryParam("page", "integer", "Page number, from 1"),
	queryParam("limit", "integer", "Page size, 1 to 100"),
	queryParam("source", "string", "broker1 or broker2"),
	queryParam("policyType", "string", "Case-insensitive policy type"),
	queryParam("clientType", "string", "Case-insensitive client type"),
	queryParam("search", "string", "Matches policy number, description, insurer or client ref"),
	queryParam("minAmount", "number", "Minimum insured amount"),
	queryParam("maxAmount", "number", "Maximum insured amount"),
}

var apiDoc = map[string]interface{}{
	"openapi": "3.0.0",
	"info": map[string]string{
		"title":       "Broker Policy Feed API",
		"version":     "1.0.0",
		"description": "Aggregates and standardizes broker policy data from multiple sources",
	},
	"paths": map[string]interface{}{
		"/api/broker1": getOperation("Raw broker1 documents", nil,
			map[string]string{"200": "Documents read", "500": "Store unavailable"}),
		"/api/broker2": getOperation("Raw broker2 documents", nil,
			map[string]string{"200": "Documents read", "500": "Store unavailable"}),
		"/api/test-db": getOperation("Store connectivity check", nil,
			map[string]string{"200": "Connected", "500": "Store unavailable"}),
		"/api/brokers/standardized": getOperation("Standardized, paginated policy feed with statistics", feedParams,
			map[string]string{"200": "Feed page", "304": "Not modified", "500": "Feed could not be built"}),
		"/api/brokers/standardized/export": getOperation("Filtered policy feed as XLSX", feedParams,
			map[string]string{"200": "Spreadsheet", "500": "Feed could not be built"}),
		"/api/brokers/field-mapping": getOperation("Broker to canonical field mapping", nil,
			map[string]string{"200": "Mapping table"}),
	},
}

// HandleGetAPIDoc serves the OpenAPI description of the routes.
func HandleGetAPIDoc(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, http.StatusOK, apiDoc)
}
