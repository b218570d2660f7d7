// Package roster adapts loosely-keyed participant records into typed
// participants and selects the candidates eligible for grouping.
package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/scanprof/zenos/internal/domain/classcode"
	"github.com/scanprof/zenos/internal/domain/model"
)

// RawRecord is a participant record as scanned or imported: arbitrary keys,
// arbitrary JSON values.
type RawRecord map[string]any

// Canonical field names.
const (
	FieldNom      = "nom"
	FieldPrenom   = "prenom"
	FieldClasse   = "classe"
	FieldSexe     = "sexe"
	FieldDistance = "distance"
	FieldVitesse  = "vitesse"
	FieldVMA      = "vma"
	FieldTemps    = "temps_total"
)

// aliases lists, per canonical field, the keys accepted in raw records.
// Exact keys are tried first, then a case-insensitive match.
var aliases = map[string][]string{
	FieldNom:      {"nom", "Nom", "name", "lastname", "last_name", "surname"},
	FieldPrenom:   {"prenom", "Prénom", "Prenom", "prénom", "firstName", "firstname", "first_name"},
	FieldClasse:   {"classe", "Classe", "class", "classe_eleve", "group", "groupe"},
	FieldSexe:     {"sexe", "Sexe", "genre", "gender", "sex"},
	FieldDistance: {"distance", "Distance", "metres", "meters", "dist", "m"},
	FieldVitesse:  {"vitesse", "speed", "kmh", "km_h"},
	FieldVMA:      {"vma", "VMA"},
	FieldTemps:    {"temps_total", "temps", "chronometre", "chrono", "time", "duration", "duree"},
}

// Lookup returns the first non-empty value stored under one of field's aliases.
func (r RawRecord) Lookup(field string) (any, bool) {
	names, ok := aliases[field]
	if !ok {
		names = []string{field}
	}
	for _, n := range names {
		if v, ok := r[n]; ok && !isBlank(v) {
			return v, true
		}
	}
	lower := make(map[string]string, len(r))
	for k := range r {
		lower[strings.ToLower(k)] = k
	}
	for _, n := range names {
		if k, ok := lower[strings.ToLower(n)]; ok && !isBlank(r[k]) {
			return r[k], true
		}
	}
	return nil, false
}

// Text returns the aliased field as display text, or "".
func (r RawRecord) Text(field string) string {
	v, ok := r.Lookup(field)
	if !ok {
		return ""
	}
	return toText(v)
}

// Normalize returns a copy of r where every canonical field missing under its
// own name is filled from an alias, and the class is canonicalised.
func Normalize(r RawRecord) RawRecord {
	out := make(RawRecord, len(r)+len(aliases))
	for k, v := range r {
		out[k] = v
	}
	for field := range aliases {
		if v, ok := out[field]; ok && !isBlank(v) {
			continue
		}
		if v, ok := r.Lookup(field); ok {
			out[field] = v
		}
	}
	if c, ok := out[FieldClasse]; ok {
		out[FieldClasse] = classcode.Canon(toText(c))
	}
	return out
}

// Key identifies a participant across scans: lower-cased nom|prenom|classe.
func Key(r RawRecord) string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.Text(FieldNom))),
		strings.ToLower(strings.TrimSpace(r.Text(FieldPrenom))),
		strings.ToLower(strings.TrimSpace(r.Text(FieldClasse))),
	}, "|")
}

// ParseVMA converts a raw VMA value. Blank, non-numeric and non-finite values
// are rejected. A comma decimal separator is accepted.
func ParseVMA(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case interface{ Float64() (float64, error) }:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", ".")
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizeSex maps free text onto F, G or X by prefix: F… is F, G… or M… is G.
func NormalizeSex(s string) model.Sex {
	x := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(x, "F"):
		return model.Female
	case strings.HasPrefix(x, "G"), strings.HasPrefix(x, "M"):
		return model.Male
	default:
		return model.Unknown
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case interface{ String() string }:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
