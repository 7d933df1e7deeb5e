// Package settings manages the wizard preferences stored in config.json.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/estudazilla/internal/jsonstore"
)

// FileName is the settings file inside the wizard data directory.
const FileName = "config.json"

// ErrUnknownKey is returned by Set for keys that are not settings.
var ErrUnknownKey = errors.New("unknown setting")

// Settings are the wizard preferences.
type Settings struct {
	Theme            string   `json:"theme" validate:"oneof=light dark"`
	DefaultDir       string   `json:"default_dir"`
	RecentProjects   []string `json:"recent_projects"`
	PomodoroDuration int      `json:"pomodoro_duration" validate:"min=1,max=120"`
	FontSize         int      `json:"font_size" validate:"min=6,max=48"`
	FontFamily       string   `json:"font_family" validate:"required"`
}

// Defaults returns the settings used when config.json is missing or lacks a key.
func Defaults() Settings {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	family := "Helvetica"
	if runtime.GOOS == "windows" {
		family = "Segoe UI"
	}
	return Settings{
		Theme:            "dark",
		DefaultDir:       filepath.Join(home, "Documents", "Projects"),
		RecentProjects:   []string{},
		PomodoroDuration: 25,
		FontSize:         10,
		FontFamily:       family,
	}
}

// Keys lists the keys accepted by Set, in file order.
func Keys() []string {
	t := reflect.TypeOf(Settings{})
	keys := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		keys = append(keys, t.Field(i).Tag.Get("json"))
	}
	return keys
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// Validate checks every setting against its allowed range.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate.Struct() > %w", err)
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s %s", e.Field(), e.Tag(), e.Param()))
		}
		return fmt.Errorf("invalid settings: %s", strings.Join(msgs, ", "))
	}
	return nil
}

// Load reads the settings at path merged over the defaults.
// A missing or malformed file yields the defaults.
func Load(path string) (Settings, error) {
	s, err := jsonstore.Load(path, Defaults())
	if err != nil {
		return Defaults(), fmt.Errorf("jsonstore.Load(%s) > %w", path, err)
	}
	if s.RecentProjects == nil {
		s.RecentProjects = []string{}
	}
	return s, nil
}

// Save validates and writes the settings to path.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := jsonstore.Save(path, s); err != nil {
		return fmt.Errorf("jsonstore.Save(%s) > %w", path, err)
	}
	return nil
}

// Set assigns value to the setting named key.
// recent_projects takes a comma separated list.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "theme":
		s.Theme = strings.ToLower(strings.TrimSpace(value))
	case "default_dir":
		s.DefaultDir = strings.TrimSpace(value)
	case "font_family":
		s.FontFamily = strings.TrimSpace(value)
	case "pomodoro_duration", "font_size":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		if key == "pomodoro_duration" {
			s.PomodoroDuration = n
		} else {
			s.FontSize = n
		}
	case "recent_projects":
		projects := []string{}
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				projects = append(projects, p)
			}
		}
		s.RecentProjects = projects
	default:
		return fmt.Errorf("%w %q, expected one of %s", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return s.Validate()
}

// AddRecentProject moves path to the front of the recent projects, keeping at most limit entries.
func (s *Settings) AddRecentProject(path string, limit int) {
	projects := slices.DeleteFunc(slices.Clone(s.RecentProjects), func(p string) bool {
		return p == path
	})
	projects = append([]string{path}, projects...)
	if limit > 0 && len(projects) > limit {
		projects = projects[:limit]
	}
	s.RecentProjects = projects
}
