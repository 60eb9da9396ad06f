package dbtypes

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringList maps a Postgres text[] column onto a Go slice. Values are plain
// labels (tasting notes, certifications) and never contain braces or quotes.
type StringList []string

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return l.parseFromString(v)
	case []byte:
		return l.parseFromString(string(v))
	default:
		return fmt.Errorf("StringList: unsupported Scan type %T", src)
	}
}

func (l StringList) Value() (driver.Value, error) {
	// Postgres array literal: {a,b}
	if len(l) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(l))
	for _, entry := range l {
		parts = append(parts, `"`+entry+`"`)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

func (l *StringList) parseFromString(s string) error {
	s = strings.TrimSpace(s)
	if s == "{}" || s == "" {
		*l = StringList{}
		return nil
	}
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if strings.TrimSpace(s) == "" {
		*l = StringList{}
		return nil
	}

	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, strings.TrimSpace(strings.Trim(r, `"`)))
	}
	*l = StringList(out)
	return nil
}
