// Package catalog carries the static reference data the planner needs:
// circuit characteristics and constructor name lineages.
package catalog

import "github.com/pitwall/pitwall/core/model"

// Track describes a circuit's speed character and lap length.
type Track struct {
	Type     model.TrackType
	LengthKM float64
}

// DefaultTrack is used for circuits missing from the catalog.
var DefaultTrack = Track{Type: model.TrackMedium, LengthKM: 5.0}

var trackConfig = map[string]Track{
	"Bahrain International Circuit":        {model.TrackMedium, 5.412},
	"Jeddah Corniche Circuit":              {model.TrackHigh, 6.174},
	"Albert Park Grand Prix Circuit":       {model.TrackMedium, 5.278},
	"Baku City Circuit":                    {model.TrackMedium, 6.003},
	"Miami International Autodrome":        {model.TrackLow, 5.412},
	"Circuit de Monaco":                    {model.TrackLow, 3.337},
	"Circuit de Barcelona-Catalunya":       {model.TrackMedium, 4.657},
	"Circuit Gilles Villeneuve":            {model.TrackMedium, 4.361},
	"Red Bull Ring":                        {model.TrackMedium, 4.318},
	"Silverstone Circuit":                  {model.TrackHigh, 5.891},
	"Hungaroring":                          {model.TrackLow, 4.381},
	"Circuit de Spa-Francorchamps":         {model.TrackHigh, 7.004},
	"Circuit Zandvoort":                    {model.TrackLow, 4.259},
	"Autodromo Nazionale Monza":            {model.TrackHigh, 5.793},
	"Marina Bay Street Circuit":            {model.TrackLow, 4.940},
	"Suzuka Circuit":                       {model.TrackMedium, 5.807},
	"Lusail International Circuit":         {model.TrackMedium, 5.419},
	"Circuit of The Americas":              {model.TrackMedium, 5.513},
	"Autódromo Hermanos Rodríguez":         {model.TrackLow, 4.304},
	"Autódromo José Carlos Pace":           {model.TrackMedium, 4.309},
	"Las Vegas Strip Circuit":              {model.TrackMedium, 6.201},
	"Yas Marina Circuit":                   {model.TrackMedium, 5.281},
	"Autodromo Enzo e Dino Ferrari":        {model.TrackMedium, 4.909},
	"Shanghai International Circuit":       {model.TrackMedium, 5.451},
	"Autodromo Internazionale del Mugello": {model.TrackHigh, 5.245},
}

// TrackInfo returns the circuit's characteristics, falling back to
// DefaultTrack for unknown names.
func TrackInfo(circuit string) Track {
	if t, ok := trackConfig[circuit]; ok {
		return t
	}
	return DefaultTrack
}
