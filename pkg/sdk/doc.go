// Package navegador is an in-process Go client for the Araraquara social
// service navigator.
//
// The matcher works offline against the embedded catalog:
//
//	client, _ := navegador.New(ctx)
//	res, _ := client.Match(ctx, navegador.MatchQuery{
//	    Demanda:   "pet",
//	    Gravidade: navegador.GravidadeGrave,
//	})
//
// Triage needs a language model and, optionally, a database for history
// and token budget persistence:
//
//	client, _ := navegador.New(ctx,
//	    navegador.WithGemini(os.Getenv("GEMINI_API_KEY")),
//	    navegador.WithValkey("localhost:6379", ""),
//	    navegador.WithTokenBudget(500_000, 0, true),
//	)
//	defer client.Close()
//	result, _ := client.Triage(ctx, "Mulher com cachorro precisa de abrigo hoje")
package navegador
