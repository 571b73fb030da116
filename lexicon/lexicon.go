package lexicon

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Lexicon holds the static dictionaries shared by all records of a run.
// Any of them may be nil.
type Lexicon struct {
	Gender    map[string]string
	Demonym   map[string]string
	Geo       Geo
	Brown     map[string]string
	Gazetteer map[string]struct{}
}

// Geo maps a place to what it is known to contain or be, e.g.
// "warsaw" -> ["city"].
type Geo map[string][]string

// UnmarshalJSON accepts plain string values as one element lists.
func (g *Geo) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Geo, len(raw))
	for k, v := range raw {
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			out[k] = list
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return fmt.Errorf("geo entry %q: %w", k, err)
		}
		out[k] = []string{s}
	}
	*g = out
	return nil
}

// Has reports whether other is listed under place.
func (g Geo) Has(place, other string) bool {
	for _, v := range g[place] {
		if v == other {
			return true
		}
	}
	return false
}

// Clean lowercases s, removes backquotes and brackets and a leading hyphen.
func Clean(s string) string {
	s = norm.NFKC.String(s)
	s = strings.NewReplacer("`", "", "(", "", ")", "").Replace(s)
	s = strings.TrimPrefix(s, "-")
	return strings.ToLower(s)
}

// ReadJSON decodes the JSON file at path into v.
func ReadJSON(path string, v any) error {
	f, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	if err := json.Unmarshal(f, v); err != nil {
		return fmt.Errorf("JSON decoding error in %s: %w", path, err)
	}
	return nil
}

// ReadBrown reads Brown clusters in the "bits token [count]" format.
func ReadBrown(r io.Reader) (map[string]string, error) {
	clusters := map[string]string{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		clusters[fields[1]] = fields[0]
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return clusters, nil
}

// GeoLite2 City Locations columns with country, subdivision and city names
var gazetteerColumns = []int{5, 7, 10}

// ReadGazetteer reads the lowercased location names of a GeoLite2 City
// Locations CSV. The header row is skipped.
func ReadGazetteer(r io.Reader) (map[string]struct{}, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	locations := map[string]struct{}{}
	header := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}

		for _, col := range gazetteerColumns {
			if col >= len(row) || row[col] == "" {
				continue
			}
			locations[strings.ToLower(row[col])] = struct{}{}
		}
	}
	return locations, nil
}

// Paths of the dictionary files. Empty paths are not loaded.
type Paths struct {
	Gender    string
	Demonym   string
	Geo       string
	Brown     string
	Gazetteer string
}

// Load reads all dictionaries named in p.
func Load(p Paths) (*Lexicon, error) {
	lex := &Lexicon{}

	if p.Gender != "" {
		if err := ReadJSON(p.Gender, &lex.Gender); err != nil {
			return nil, err
		}
	}
	if p.Demonym != "" {
		if err := ReadJSON(p.Demonym, &lex.Demonym); err != nil {
			return nil, err
		}
	}
	if p.Geo != "" {
		if err := ReadJSON(p.Geo, &lex.Geo); err != nil {
			return nil, err
		}
	}

	if p.Brown != "" {
		f, err := os.Open(p.Brown)
		if err != nil {
			return nil, fmt.Errorf("IO error: %w", err)
		}
		defer f.Close()
		if lex.Brown, err = ReadBrown(f); err != nil {
			return nil, fmt.Errorf("brown clusters %s: %w", p.Brown, err)
		}
	}

	if p.Gazetteer != "" {
		f, err := os.Open(p.Gazetteer)
		if err != nil {
			return nil, fmt.Errorf("IO error: %w", err)
		}
		defer f.Close()
		if lex.Gazetteer, err = ReadGazetteer(f); err != nil {
			return nil, fmt.Errorf("gazetteer %s: %w", p.Gazetteer, err)
		}
	}

	return lex, nil
}
