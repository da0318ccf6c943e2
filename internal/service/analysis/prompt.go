// internal/service/analysis/prompt.go

package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"chezvous/internal/domain/report"
	socialsvc "chezvous/internal/service/social"
)

// buildNeighborhoodPrompt assembles the analysis prompt: the resolved
// address, the transport findings verbatim, resident commentary, and the
// JSON structure the model must return.
func buildNeighborhoodPrompt(input report.NeighborhoodInput) string {
	var b strings.Builder

	b.WriteString("You are analyzing a Paris neighborhood for someone looking for accommodation.\n\n")

	fmt.Fprintf(&b, "Address: %s\n", input.Address.FullAddress)
	if input.Address.Arrondissement != nil {
		fmt.Fprintf(&b, "Arrondissement: %d\n", *input.Address.Arrondissement)
	} else {
		b.WriteString("Arrondissement: Unknown\n")
	}
	b.WriteString("\n")

	if input.Transport != nil {
		b.WriteString("TRANSPORT DATA (measured, use verbatim):\n")
		fmt.Fprintf(&b, "Connectivity score: %d/5\n", input.Transport.ConnectivityScore)
		fmt.Fprintf(&b, "Late-night metro service: %t\n", input.Transport.HasLateNightService)
		for _, station := range input.Transport.NearbyStations {
			fmt.Fprintf(&b, "- %s (%s, lines %s): %d min walk\n",
				station.Name, station.TransportType,
				strings.Join(station.Lines, "/"), station.WalkTimeMinutes)
		}
		for _, estimate := range input.Transport.LandmarkTravelTimes {
			fmt.Fprintf(&b, "- %s: %s\n", estimate.Landmark, estimate.Time)
		}
		b.WriteString("\n")
	}

	b.WriteString(socialsvc.FormatInsights(input.Insights))
	b.WriteString("\n")

	b.WriteString(`Based on your knowledge of Paris neighborhoods and the data above, provide a comprehensive analysis in JSON format with the following structure:

{
  "overview": {
    "description": "2-3 sentence overview of the neighborhood character",
    "three_word_summary": "Three words that capture the essence (e.g., 'Historic, Vibrant, Charming')"
  },
  "ratings": {
    "safety": {"score": 1-5, "justification": "brief explanation"},
    "walkability": {"score": 1-5, "justification": "brief explanation"},
    "nightlife": {"score": 1-5, "justification": "brief explanation"},
    "family_friendly": {"score": 1-5, "justification": "brief explanation"},
    "food_scene": {"score": 1-5, "justification": "brief explanation"},
    "quietness": {"score": 1-5, "justification": "brief explanation"},
    "tourist_density": {"score": 1-5, "justification": "1=few tourists, 5=very touristy"}
  },
  "highlights": [
    "Key characteristic 1",
    "Key characteristic 2",
    "Key characteristic 3",
    "Key characteristic 4"
  ],
  "recommendations": {
    "cafes": ["Café name 1 - why it's good", "Café name 2 - why it's good"],
    "restaurants": ["Restaurant 1 - cuisine type and why", "Restaurant 2 - cuisine type and why"],
    "activities": ["Activity 1 with brief description", "Activity 2 with brief description"]
  },
  "nearby_landmarks": [
    {"name": "Landmark name", "travel_time": "e.g., 15 min walk or 20 min metro"},
    {"name": "Another landmark", "travel_time": "estimated time"}
  ]
}

Return ONLY valid JSON, no additional text.`)

	return b.String()
}

// buildComparisonPrompt asks the model to weigh two analyzed addresses.
func buildComparisonPrompt(a, b *report.NeighborhoodReport) string {
	analysisA, _ := json.MarshalIndent(a.Analysis, "", "  ")
	analysisB, _ := json.MarshalIndent(b.Analysis, "", "  ")

	return fmt.Sprintf(`Compare these two Paris neighborhoods for someone choosing accommodation:

Address 1 (%s):
%s

Address 2 (%s):
%s

Provide a comparison in JSON format:

{
  "better_for": {
    "families": "address1 or address2 with brief reason",
    "nightlife": "address1 or address2 with brief reason",
    "safety": "address1 or address2 with brief reason",
    "budget": "address1 or address2 with brief reason",
    "tourists": "address1 or address2 with brief reason",
    "quiet_living": "address1 or address2 with brief reason"
  },
  "overall_recommendation": "Which address is better overall and why (2-3 sentences)"
}

Return ONLY valid JSON.`,
		a.Address.FullAddress, analysisA,
		b.Address.FullAddress, analysisB,
	)
}

// extractJSON strips the markdown code fences models sometimes wrap JSON in.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	return text
}
