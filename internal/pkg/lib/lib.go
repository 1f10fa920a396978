// Package lib contains various library packages
package lib

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/bytedance/sonic"
)

type response map[string]interface{}

// LogFatal is a function that is used to Run various functions that need to crash if an error is found
func LogFatal(err error) {
	if err != nil {
		logger.Errorf(err)
	}
}

// ToStr is a function that is used to convert bad json strings to nicer json bytes
func ToStr(jsonStr string) ([]byte, error) {
	var payload map[string]interface{}
	err := sonic.UnmarshalString(jsonStr, &payload)
	if err != nil {
		return []byte(jsonStr), err
	}

	payloadBytes, err := sonic.Marshal(payload)
	if err != nil {
		return []byte(jsonStr), err
	}

	return payloadBytes, nil
}

// JSONResponse is used to send a JSON response with a single message
func JSONResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponseWInterface(w, statusCode, response{
		"message": message,
	})
}

// JSONResponseWInterface is used to send an arbitrary payload as the JSON response
func JSONResponseWInterface(w http.ResponseWriter, statusCode int, res any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	sonic.ConfigDefault.NewEncoder(w).Encode(res)
}

// Base64URLDecode decodes base64 url encoded strings with or without padding
func Base64URLDecode(str string) ([]byte, error) {
	if l := len(str) % 4; l > 0 {
		str += strings.Repeat("=", 4-l)
	}

	return base64.URLEncoding.DecodeString(str)
}
