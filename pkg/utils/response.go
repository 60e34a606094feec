package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope 是所有数据接口统一的响应外壳
type Envelope struct {
	Data any `json:"data"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondData 以 {"data": ...} 包装后发送JSON响应
func RespondData(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, Envelope{Data: data})
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}
