package helper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"mockui/internal/model"
)

// Log appends one diagnostic line. Strings are kept verbatim, anything else
// is rendered as indented JSON; the parts are joined with single spaces.
func (s *Service) Log(args ...any) model.Handle {
	parts := lo.Map(args, func(arg any, _ int) string {
		return stringify(arg)
	})
	handle := s.store.AppendLog(model.LogRecord{
		Timestamp: s.now(),
		Data:      strings.Join(parts, " "),
	})
	s.metrics.LogAppended()
	return handle
}

func stringify(arg any) string {
	if str, ok := arg.(string); ok {
		return str
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(arg); err != nil {
		return fmt.Sprintf("%v", arg)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
