package persona

import (
	"fmt"
	"strings"
)

// Request carries the aggregate shopping facts the persona is derived from.
// OrderCount is used only for the invocation guard, never in the prompt.
type Request struct {
	OrderCount     int
	TopVendors     []string
	ProductsBought int
	MoneySpent     float64
	TotalSaved     float64
	TopProducts    []string
}

const maxPromptVendors = 3

const maxPromptProducts = 5

const systemPrompt = `You are a specialized shopping persona generator. Your sole purpose is to analyze shopping data and create fun, creative personas. Always return a valid JSON object with "persona" and "description" keys. The persona should be a catchy 2-4 word phrase, and the description should be one sentence explaining the persona.`

// BuildPrompt renders the natural-language instruction sent to the persona
// service: top vendors, totals, and up to five top product names, with a
// strict two-field JSON reply format.
func BuildPrompt(req Request) (string, string) {
	topVendors := strings.Join(capped(req.TopVendors, maxPromptVendors), ", ")
	if topVendors == "" {
		topVendors = "Various retailers"
	}

	topProductsText := ""
	if len(req.TopProducts) > 0 {
		topProductsText = fmt.Sprintf("\n- Top purchased products: %s",
			strings.Join(capped(req.TopProducts, maxPromptProducts), ", "))
	}

	userPrompt := fmt.Sprintf(`Generate a creative, fun shopping persona name inspired by Spotify Wrapped playlists.

Shopping Details:
- Top stores: %s
- Products purchased: %d
- Total spent: $%.2f
- Total saved: $%.2f%s

The persona should be a catchy 2-4 word phrase that captures this shopper's style (like "Midnight Luxury Explorer" or "Thrifty Tech Enthusiast").
Also include a short, one-sentence description explaining the persona.

YOU MUST format the response EXACTLY like this JSON:
{
  "persona": "The persona name",
  "description": "A short, one-sentence description"
}`, topVendors, req.ProductsBought, req.MoneySpent, req.TotalSaved, topProductsText)

	return systemPrompt, userPrompt
}

func capped(values []string, limit int) []string {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}
