package nationalrail

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var crsPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ErrUnknownStation is returned by StationName for a CRS code not in the
// lookup table.
var ErrUnknownStation = errors.New("unknown station")

// stationNames covers the stations on and around the Brighton Main Line that
// a board is likely to be configured for. Boards elsewhere get their name
// from the upstream locationName.
var stationNames = map[string]string{
	"BAB": "Balcombe",
	"BDM": "Bedford",
	"BFR": "London Blackfriars",
	"BTN": "Brighton",
	"BUG": "Burgess Hill",
	"CBG": "Cambridge",
	"CLJ": "Clapham Junction",
	"CTK": "City Thameslink",
	"ECR": "East Croydon",
	"GTW": "Gatwick Airport",
	"HHE": "Haywards Heath",
	"HOR": "Horley",
	"HOV": "Hove",
	"HSK": "Hassocks",
	"LBG": "London Bridge",
	"LIT": "Littlehampton",
	"LWS": "Lewes",
	"PRP": "Preston Park",
	"RDH": "Redhill",
	"SSE": "Shoreham-by-Sea",
	"STP": "London St Pancras International",
	"TBD": "Three Bridges",
	"VIC": "London Victoria",
	"WRH": "Worthing",
	"WVF": "Wivelsfield",
}

// ValidateCRS checks that code is a three letter Computer Reservation System
// code. Lower case is rejected rather than corrected.
func ValidateCRS(code string) error {
	if !crsPattern.MatchString(code) {
		return errors.Errorf("`%s` is not a valid CRS code", code)
	}
	return nil
}

// StationName returns the display name for a CRS code.
func StationName(crs string) (string, error) {
	name, ok := stationNames[strings.ToUpper(crs)]
	if !ok {
		return "", errors.Wrapf(ErrUnknownStation, "no station name for `%s`", crs)
	}
	return name, nil
}
