package chat

import (
	"fmt"

	"github.com/singul69/My-chat-app/internal/models"
)

// Audience names the half of a canned message a recipient is shown. Keeping
// it a closed two-variant enum means an unexpected gender value fails loudly
// instead of silently falling into the wrong branch.
type Audience int

const (
	AudienceBoys Audience = iota
	AudienceGirls
)

// audienceFor maps a declared gender to its message audience.
func audienceFor(g models.Gender) (Audience, error) {
	switch g {
	case models.GenderMale:
		return AudienceBoys, nil
	case models.GenderFemale:
		return AudienceGirls, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGender, g)
	}
}

// resolve returns the text and image of msg for the given audience.
func resolve(msg models.CannedMessage, audience Audience) (text, imageURL string) {
	switch audience {
	case AudienceBoys:
		return msg.ForBoysMessage, msg.ForBoysImageURL
	case AudienceGirls:
		return msg.ForGirlsMessage, msg.ForGirlsImageURL
	default:
		// Unreachable: audienceFor only produces the two variants above.
		return "", ""
	}
}
