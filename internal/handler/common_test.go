package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asPassenger(req *http.Request, passengerID int) *http.Request {
	req.Header.Set(HeaderPassengerID, strconv.Itoa(passengerID))
	return req
}

func asOperator(req *http.Request, operatorID int) *http.Request {
	req.Header.Set(HeaderOperatorID, strconv.Itoa(operatorID))
	return req
}
