package handlers

import (
	"encoding/json"
	"net/http"
)

// Значения поля result. HTTP-статус всегда 200, исход передаётся в result.
const (
	ResultOK     = "OK"
	ResultFailed = "FAILED"
	ResultError  = "ERROR"
)

// DateLayout: формат дат в запросах и ответах.
const DateLayout = "2006/01/02 15:04:05"

type resultResponse struct {
	Result string `json:"result"`
}

type dataResponse struct {
	Result string `json:"result"`
	Data   any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeResult(w http.ResponseWriter, result string) {
	writeJSON(w, resultResponse{Result: result})
}

func writeData(w http.ResponseWriter, result string, data any) {
	writeJSON(w, dataResponse{Result: result, Data: data})
}

// resultOf переводит признак успеха сервиса в значение result.
func resultOf(ok bool) string {
	if ok {
		return ResultOK
	}
	return ResultFailed
}
