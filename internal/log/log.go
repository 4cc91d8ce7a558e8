package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type entry struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	Action string         `json:"action,omitempty"`
	Status int            `json:"status,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// fold turns alternating key/value pairs into the fields map; odd trailing
// values and non-string keys are dropped.
func fold(kv []any) map[string]any {
	if len(kv) == 0 {
		return nil
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			continue
		}
		m[k] = kv[i+1]
	}
	return m
}

func write(level string, c *fiber.Ctx, action string, err error, kv []any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fold(kv)}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

// Audit records a state-changing action (listing/interest/user mutations).
// kv is alternating key/value pairs, e.g. "crop", id.
func Audit(c *fiber.Ctx, action string, kv ...any) {
	write("audit", c, action, nil, kv)
}

// Security flags rejected input and throttled callers.
func Security(c *fiber.Ctx, action string, kv ...any) {
	write("warn", c, action, nil, kv)
}

func Error(c *fiber.Ctx, action string, err error, kv ...any) {
	write("error", c, action, err, kv)
}
