package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// DateLayouts are the accepted --due formats, tried in order.
var DateLayouts = []string{"2006-01-02", "2006-01-02 15:04", time.RFC3339}

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
	now func() time.Time
}

// NewFlagParser creates a new flag parser. now anchors relative dates; nil
// means time.Now.
func NewFlagParser(cmd *cobra.Command, now func() time.Time) *FlagParser {
	if now == nil {
		now = time.Now
	}
	return &FlagParser{cmd: cmd, now: now}
}

// Changed reports whether the user set the flag.
func (p *FlagParser) Changed(name string) bool {
	return p.cmd.Flags().Changed(name)
}

// String returns a string flag, or nil when it was not set.
func (p *FlagParser) String(name string) *string {
	if !p.Changed(name) {
		return nil
	}
	v, err := p.cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

// Status parses a status flag. An unset flag returns "".
func (p *FlagParser) Status(name string) (models.Status, error) {
	raw, _ := p.cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return models.ParseStatus(raw)
}

// Priority parses a priority flag. An unset flag returns "".
func (p *FlagParser) Priority(name string) (models.Priority, error) {
	raw, _ := p.cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return models.ParsePriority(raw)
}

// Tags returns a string slice flag, or nil when it was not set.
func (p *FlagParser) Tags(name string) *[]string {
	if !p.Changed(name) {
		return nil
	}
	tags, err := p.cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return &tags
}

// Due parses a due date flag. Besides the DateLayouts it accepts "today",
// "tomorrow" and "+Nd". An unset flag returns nil.
func (p *FlagParser) Due(name string) (*time.Time, error) {
	raw, _ := p.cmd.Flags().GetString(name)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch lower := strings.ToLower(raw); {
	case lower == "today":
		return &today, nil
	case lower == "tomorrow":
		d := today.AddDate(0, 0, 1)
		return &d, nil
	case strings.HasPrefix(lower, "+") && strings.HasSuffix(lower, "d"):
		var days int
		if _, err := fmt.Sscanf(lower, "+%dd", &days); err != nil || days < 0 {
			return nil, cli.Usagef("invalid --%s %q: expected +<days>d", name, raw)
		}
		d := today.AddDate(0, 0, days)
		return &d, nil
	}

	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return &t, nil
		}
	}
	return nil, cli.Usagef("invalid --%s %q: expected YYYY-MM-DD, today, tomorrow or +<days>d", name, raw)
}
