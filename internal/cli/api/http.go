package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Значения поля result в ответах сервера.
const (
	ResultOK     = "OK"
	ResultFailed = "FAILED"
	ResultError  = "ERROR"
)

var (
	// ErrFailed: сервер отклонил операцию (нет записи, невалидные данные, дубликат).
	ErrFailed = errors.New("rejected by server")
	// ErrServer: внутренняя ошибка сервера или неожиданный ответ.
	ErrServer = errors.New("server error")
)

// Envelope: общий формат ответа {"result": ..., "data": ...}.
type Envelope struct {
	Result string          `json:"result"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// DoJSON отправляет запрос с JSON-телом (payload может быть nil) и читает ответ целиком.
func DoJSON(ctx context.Context, method, url string, payload any) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, b, nil
}

// Call выполняет запрос к API и разбирает конверт.
// FAILED превращается в ErrFailed, ERROR и не-200 в ErrServer; data при этом не разбирается.
func Call(ctx context.Context, method, url string, payload any, data any) error {
	resp, body, err := DoJSON(ctx, method, url, payload)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d %s", ErrServer, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: bad response: %v", ErrServer, err)
	}
	switch env.Result {
	case ResultOK:
	case ResultFailed:
		return ErrFailed
	default:
		return fmt.Errorf("%w: result %q", ErrServer, env.Result)
	}

	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return fmt.Errorf("%w: bad data: %v", ErrServer, err)
		}
	}
	return nil
}
