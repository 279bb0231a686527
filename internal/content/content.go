package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
)

//go:embed data/galaxy.json data/missions.json
var dataFS embed.FS

// TriviaEntry describes one guessable object in the trivia table.
type TriviaEntry struct {
	Description   string   `json:"description"`
	Constellation string   `json:"constellation"`
	Image         string   `json:"image"`
	Answers       []string `json:"answers"`
}

type Mission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Library holds the read-only trivia and mission tables, decoded once at
// construction.
type Library struct {
	trivia     map[string]TriviaEntry
	triviaKeys []string
	missions   map[string]Mission
}

func Load() (*Library, error) {
	l := &Library{}
	if err := decodeEmbedded("data/galaxy.json", &l.trivia); err != nil {
		return nil, err
	}
	if err := decodeEmbedded("data/missions.json", &l.missions); err != nil {
		return nil, err
	}
	if len(l.trivia) == 0 {
		return nil, fmt.Errorf("trivia table is empty")
	}
	if len(l.missions) == 0 {
		return nil, fmt.Errorf("mission table is empty")
	}
	for key := range l.trivia {
		l.triviaKeys = append(l.triviaKeys, key)
	}
	sort.Strings(l.triviaKeys)
	return l, nil
}

func decodeEmbedded(name string, v any) error {
	b, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (l *Library) Trivia(key string) (TriviaEntry, bool) {
	e, ok := l.trivia[key]
	return e, ok
}

// RandomTrivia picks one trivia entry uniformly.
func (l *Library) RandomTrivia() (string, TriviaEntry) {
	key := l.triviaKeys[rand.IntN(len(l.triviaKeys))]
	return key, l.trivia[key]
}

// Mission returns the mission for a 1-based progression index.
func (l *Library) Mission(index int) (Mission, bool) {
	m, ok := l.missions[strconv.Itoa(index)]
	return m, ok
}

func (l *Library) MissionCount() int {
	return len(l.missions)
}
