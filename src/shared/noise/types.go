package noise

import (
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

// Type names a noise profile with a dedicated removal chain.
type Type string

const (
	// TypeAuto asks the classifier to pick a profile from the audio.
	TypeAuto Type = "auto"

	// TypeWhite is broadband noise spread evenly across the spectrum.
	TypeWhite Type = "white"

	// TypeHiss is high frequency noise such as tape or preamp hiss.
	TypeHiss Type = "hiss"

	// TypeHum is mains hum and its harmonics at 50 or 60 Hz.
	TypeHum Type = "hum"

	// TypeGeneric is the catch all chain for unclassifiable noise.
	TypeGeneric Type = "generic"
)

func ParseType(value string) (Type, error) {
	switch Type(value) {
	case TypeAuto, TypeWhite, TypeHiss, TypeHum, TypeGeneric:
		return Type(value), nil
	case "":
		return TypeAuto, nil
	default:
		return "", mark.Message(marks.InvalidParameter, "Unknown noise type: "+value)
	}
}
