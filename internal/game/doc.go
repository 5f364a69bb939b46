// Package game runs single-player rounds of the poker-hand scoring game.
//
// A round deals a hand from a freshly shuffled deck. The player either
// plays up to five cards, which are scored by the evaluator and added to the
// round score, or discards up to five cards and draws replacements. Reaching
// the target score clears the round; running out of hands first ends the
// game.
//
// # Basic Usage
//
//	g, err := game.NewGame(game.DefaultRules(), game.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	result, err := g.PlayHand([]int{0, 1})
//	if errors.Is(err, game.ErrNoHandsRemaining) {
//	    // check State().Hands before playing
//	}
//	fmt.Println(result.Score)
//
// # Deterministic Testing
//
// Every round's shuffle is derived from the seed passed with WithSeed, so
// two games with the same seed deal the same cards.
package game
