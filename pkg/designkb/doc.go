// Package designkb is an in-process Go client for the designkb knowledge bases.
//
// It ranks curated UI/UX design knowledge (styles, palettes, typography, landing
// patterns, UX laws, guidelines, framework stacks) against free-text queries with
// BM25 and folds several domains into one design-system recommendation.
//
//	client, _ := designkb.New(ctx)                        // built-in data
//	res, _ := client.Search(ctx, "fintech dashboard", "color", 3)
//	domain := client.DetectDomain("fitts's law and touch target size") // "ux"
//	rec, _ := client.Recommend(ctx, "fintech dashboard", "Ledger")
//	md, _ := client.Render(ctx, "fintech dashboard", "Ledger", designkb.FormatMarkdown)
//
// Data can also come from a directory (WithDataDir) or from Redis (WithRedis)
// after `designkb seed`.
package designkb
