package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"alfredoptarigan/resume-scorer/internal/models"
)

type ProfileStore interface {
	Load() (*LoadReport, error)
	Get(name string) (*models.RoleProfile, bool)
	Find(query string) (*models.RoleProfile, bool)
	Names() []string
	All() []*models.RoleProfile
	Dir() string
	OnReload(fn func(profiles []*models.RoleProfile))
	Watch(ctx context.Context) error
}

type LoadReport struct {
	Loaded []string
	Errors []*ProfileLoadError
}

// ErrorMessages flattens the load errors for API responses.
func (r *LoadReport) ErrorMessages() []string {
	var out []string
	for _, e := range r.Errors {
		out = append(out, e.Error())
	}
	return out
}

// profileFile accepts both the flat layout and the nested
// "keywords: {must_have, nice_to_have}" layout.
type profileFile struct {
	Name               string   `yaml:"name"`
	RequiredKeywords   []string `yaml:"required_keywords"`
	NiceToHaveKeywords []string `yaml:"nice_to_have_keywords"`
	Description        string   `yaml:"description"`
	Keywords           struct {
		MustHave   []string `yaml:"must_have"`
		NiceToHave []string `yaml:"nice_to_have"`
	} `yaml:"keywords"`
}

type profileStore struct {
	dir      string
	validate *validator.Validate
	mu       sync.RWMutex
	profiles map[string]*models.RoleProfile
	onReload []func([]*models.RoleProfile)
	debounce time.Duration
}

func NewProfileStore(dir string) ProfileStore {
	return &profileStore{
		dir:      dir,
		validate: validator.New(),
		profiles: make(map[string]*models.RoleProfile),
		debounce: 500 * time.Millisecond,
	}
}

func (s *profileStore) Dir() string {
	return s.dir
}

// Load reads every YAML file in the directory and swaps the in-memory set in
// one step. Malformed files are skipped and reported, never fatal.
func (s *profileStore) Load() (*LoadReport, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read role profile directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !isProfileFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(files)

	report := &LoadReport{}
	loaded := make(map[string]*models.RoleProfile, len(files))

	for _, path := range files {
		profile, err := s.parseFile(path)
		if err == nil {
			if _, dup := loaded[profile.Name]; dup {
				err = fmt.Errorf("duplicate role name %q", profile.Name)
			}
		}
		if err != nil {
			loadErr := &ProfileLoadError{Path: path, Cause: err}
			log.Printf("⚠️  Skipping role profile: %v\n", loadErr)
			report.Errors = append(report.Errors, loadErr)
			continue
		}
		loaded[profile.Name] = profile
		report.Loaded = append(report.Loaded, profile.Name)
	}

	s.mu.Lock()
	s.profiles = loaded
	hooks := append([]func([]*models.RoleProfile){}, s.onReload...)
	s.mu.Unlock()

	all := s.All()
	for _, fn := range hooks {
		fn(all)
	}

	log.Printf("✅ Loaded %d role profiles from %s\n", len(report.Loaded), s.dir)
	return report, nil
}

func (s *profileStore) parseFile(path string) (*models.RoleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return s.Parse(path, data)
}

// Parse decodes and validates one profile document.
func (s *profileStore) Parse(path string, data []byte) (*models.RoleProfile, error) {
	var raw profileFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	profile := &models.RoleProfile{
		Name:               name,
		RequiredKeywords:   cleanKeywords(append(raw.RequiredKeywords, raw.Keywords.MustHave...)),
		NiceToHaveKeywords: cleanKeywords(append(raw.NiceToHaveKeywords, raw.Keywords.NiceToHave...)),
		Description:        strings.TrimSpace(raw.Description),
		Source:             path,
	}

	if err := s.validate.Struct(profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if profile.Description == "" && profile.KeywordCount() == 0 {
		return nil, errors.New("invalid profile: needs a description or at least one keyword")
	}

	return profile, nil
}

func cleanKeywords(in []string) []string {
	var out []string
	for _, kw := range in {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func isProfileFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yml" || ext == ".yaml"
}

func (s *profileStore) Get(name string) (*models.RoleProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[name]
	return p, ok
}

// Find resolves a free-typed role such as "Data Scientist" to a profile.
func (s *profileStore) Find(query string) (*models.RoleProfile, bool) {
	if p, ok := s.Get(query); ok {
		return p, true
	}
	key := roleKey(query)
	if key == "" {
		return nil, false
	}
	for _, p := range s.All() {
		if roleKey(p.Name) == key {
			return p, true
		}
	}
	return nil, false
}

func roleKey(s string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(s))), " ")
}

func (s *profileStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *profileStore) All() []*models.RoleProfile {
	names := s.Names()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.RoleProfile, 0, len(names))
	for _, n := range names {
		if p, ok := s.profiles[n]; ok {
			out = append(out, p)
		}
	}
	return out
}

// OnReload registers a hook run after every successful Load.
func (s *profileStore) OnReload(fn func(profiles []*models.RoleProfile)) {
	s.mu.Lock()
	s.onReload = append(s.onReload, fn)
	s.mu.Unlock()
}

// Watch reloads the store when files in the directory change. It blocks until
// ctx is cancelled.
func (s *profileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create profile watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	log.Printf("👀 Watching %s for role profile changes\n", s.dir)

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isProfileFile(event.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			log.Println("🔄 Role profiles changed, reloading")
			if _, err := s.Load(); err != nil {
				log.Printf("❌ Failed to reload role profiles: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("⚠️  Profile watcher error: %v\n", err)
		}
	}
}
