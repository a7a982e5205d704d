package autostart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/template"
)

var plistTemplate = template.Must(template.New("plist").Funcs(template.FuncMap{
	"xml": xmlEscape,
}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{xml .Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{xml .Program}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`))

var programPattern = regexp.MustCompile(`(?s)<key>ProgramArguments</key>\s*<array>\s*<string>([^<]+)</string>`)

// launchAgentStore manages ~/Library/LaunchAgents/com.<app>.plist
type launchAgentStore struct {
	label string
	dir   string
}

func newLaunchAgentStore(appName, dir string) *launchAgentStore {
	return &launchAgentStore{label: "com." + appName, dir: dir}
}

func (s *launchAgentStore) Location() string {
	return filepath.Join(s.dir, s.label+".plist")
}

func (s *launchAgentStore) Registered() (string, bool, error) {
	data, err := os.ReadFile(s.Location())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	match := programPattern.FindSubmatch(data)
	if match == nil {
		return "", true, nil
	}
	return xmlUnescape(string(match[1])), true, nil
}

func (s *launchAgentStore) Register(exePath string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create LaunchAgents dir: %w", err)
	}

	var buf bytes.Buffer
	err := plistTemplate.Execute(&buf, struct{ Label, Program string }{s.label, exePath})
	if err != nil {
		return err
	}
	return os.WriteFile(s.Location(), buf.Bytes(), 0o644)
}

func (s *launchAgentStore) Unregister() error {
	if err := os.Remove(s.Location()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func xmlUnescape(s string) string {
	var out struct {
		Text string `xml:",chardata"`
	}
	if err := xml.Unmarshal([]byte("<s>"+s+"</s>"), &out); err != nil {
		return s
	}
	return out.Text
}
