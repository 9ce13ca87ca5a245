/*
Package numerology calculates the six core numbers of Pythagorean numerology
from a birth date and a name, and explains them.

The package separates pure derivation (pkg/domain), input rules
(pkg/validation), reference texts (pkg/refdata) and rendering (pkg/presenter)
from the surfaces that collect input and show output. Surfaces talk to an
Engine directly, or bind a Session to an error sink and a result sink through
a Controller.

# Numbers

  - Life Path: year, month and day reduced separately, then their sum reduced.
  - Destiny: every letter of the name.
  - Soul: the vowels of the name.
  - Personality: the consonants of the name.
  - Birthday: the day of the month.
  - Maturity: life path plus destiny.

Reduction sums decimal digits until a single digit remains, but stops at the
master numbers 11, 22 and 33.

# Usage

	eng, err := numerology.New()
	if err != nil {
		log.Fatal(err)
	}

	sess := domain.NewSession("")
	view, err := eng.Submit(ctx, sess, validation.Input{
		Year: "1990", Month: "7", Day: "15", Name: "JOHN SMITH",
	})
	if ve, ok := domain.AsValidationError(err); ok {
		fmt.Println(ve.Message)
		return
	}
	for _, card := range view.Cards {
		fmt.Println(card.Title, card.Number, card.Keyword)
	}

	// Switching mode re-renders the cached result without deriving it again.
	view, _ = eng.SwitchMode(ctx, sess, domain.ModeDetail)
*/
package numerology
