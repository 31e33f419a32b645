package logger

import (
	"regexp"
	"strings"

	"github.com/ncobase/taskmate/config"
	"github.com/sirupsen/logrus"
)

// bearerPattern catches credentials that leak into free-form values.
var bearerPattern = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*`)

// Desensitizer handles sensitive data masking in log fields
type Desensitizer struct {
	config *config.Desensitization
	mask   string
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	if cfg == nil {
		cfg = &config.Desensitization{}
	}
	maskChar := cfg.MaskChar
	if maskChar == "" {
		maskChar = "*"
	}
	n := cfg.FixedMaskLength
	if n <= 0 {
		n = 6
	}
	return &Desensitizer{config: cfg, mask: strings.Repeat(maskChar, n)}
}

// DesensitizeFields processes log fields and masks sensitive data
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	if !d.config.Enabled || len(fields) == 0 {
		return fields
	}

	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.desensitizeValue(key, value, 0)
	}
	return result
}

// desensitizeValue processes a single value recursively
func (d *Desensitizer) desensitizeValue(key string, value any, depth int) any {
	if depth > 10 || value == nil {
		return value
	}

	if d.isSensitiveField(key) {
		if s, ok := value.(string); ok && s == "" {
			return s
		}
		return d.mask
	}

	switch v := value.(type) {
	case string:
		return bearerPattern.ReplaceAllString(v, "Bearer "+d.mask)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = d.desensitizeValue(k, item, depth+1)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if d.isSensitiveField(k) && item != "" {
				out[k] = d.mask
				continue
			}
			out[k] = bearerPattern.ReplaceAllString(item, "Bearer "+d.mask)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = d.desensitizeValue("", item, depth+1)
		}
		return out
	default:
		return value
	}
}

// isSensitiveField checks if field name contains sensitive keywords
func (d *Desensitizer) isSensitiveField(fieldName string) bool {
	if fieldName == "" {
		return false
	}

	lowerName := strings.ToLower(fieldName)
	for _, sensitiveField := range d.config.SensitiveFields {
		if strings.Contains(lowerName, strings.ToLower(sensitiveField)) {
			return true
		}
	}
	return false
}

// desensitizingFormatter masks entry data before delegating to the wrapped formatter.
type desensitizingFormatter struct {
	next logrus.Formatter
	d    *Desensitizer
}

func (f *desensitizingFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	masked := *entry
	masked.Data = f.d.DesensitizeFields(entry.Data)
	masked.Message = bearerPattern.ReplaceAllString(entry.Message, "Bearer "+f.d.mask)
	return f.next.Format(&masked)
}
