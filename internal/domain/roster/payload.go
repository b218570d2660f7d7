package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// listKeys are the container keys searched for a participant list.
var listKeys = []string{
	"participants", "eleves", "élèves", "students", "items",
	"list", "liste", "dataset", "data", "values",
}

// signatureFamilies are the key fragments that make an object look like a
// participant. Two families must be present.
var signatureFamilies = [][]string{
	{"nom", "last", "surname", "name"},
	{"prenom", "prénom", "first"},
	{"classe", "class", "groupe"},
	{"sexe", "sex", "genre", "gender"},
	{"distance", "vma", "vitesse", "time", "chrono", "temps"},
}

const minSignatureScore = 2

// Decode parses a scanned or uploaded payload and extracts its participant
// records, already normalised.
func Decode(data []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	records := DetectList(payload)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no participant found", ErrInvalidPayload)
	}
	for i, r := range records {
		records[i] = Normalize(r)
	}
	return records, nil
}

// DetectList finds the participant records inside a decoded payload: a list
// of participants, a single participant, or a bundle holding a list under one
// of the usual container keys.
func DetectList(payload any) []RawRecord {
	switch v := payload.(type) {
	case []any:
		return participantsIn(v)
	case map[string]any:
		if LooksLikeParticipant(v) {
			return []RawRecord{v}
		}
		for _, key := range listKeys {
			switch inner := v[key].(type) {
			case []any:
				if found := participantsIn(inner); len(found) > 0 {
					return found
				}
			case map[string]any:
				for _, nested := range []string{"participants", "items"} {
					if arr, ok := inner[nested].([]any); ok {
						if found := participantsIn(arr); len(found) > 0 {
							return found
						}
					}
				}
			}
		}
	}
	return nil
}

// LooksLikeParticipant reports whether obj carries keys from at least two
// participant field families.
func LooksLikeParticipant(obj map[string]any) bool {
	score := 0
	for _, family := range signatureFamilies {
		if hasKeyLike(obj, family) {
			score++
		}
	}
	return score >= minSignatureScore
}

func hasKeyLike(obj map[string]any, fragments []string) bool {
	for k := range obj {
		lk := strings.ToLower(k)
		for _, f := range fragments {
			if strings.Contains(lk, f) {
				return true
			}
		}
	}
	return false
}

func participantsIn(items []any) []RawRecord {
	out := make([]RawRecord, 0, len(items))
	for _, it := range items {
		if obj, ok := it.(map[string]any); ok && LooksLikeParticipant(obj) {
			out = append(out, obj)
		}
	}
	return out
}
