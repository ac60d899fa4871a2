package multisource

func insights(a Assessment) []string {
	var out []string

	switch {
	case a.GitHub >= 8:
		out = append(out, "Exceptional open-source contributor with high-impact repositories")
	case a.GitHub >= 6:
		out = append(out, "Active GitHub contributor with notable open-source projects")
	case a.GitHub >= 3:
		out = append(out, "Maintains active GitHub presence with regular contributions")
	}

	switch {
	case a.Social >= 7:
		out = append(out, "Strong professional network and thought leadership presence")
	case a.Social >= 4:
		out = append(out, "Engaged in professional social media and networking")
	}

	switch {
	case a.Content >= 7:
		out = append(out, "Prolific content creator and knowledge sharer in the tech community")
	case a.Content >= 4:
		out = append(out, "Actively shares knowledge through blog posts and technical content")
	}

	switch {
	case a.Branding >= 7:
		out = append(out, "Maintains consistent and professional brand across all platforms")
	case a.Branding >= 4:
		out = append(out, "Well-established professional online presence")
	}

	active := 0
	for _, v := range []float64{a.GitHub, a.Social, a.Content, a.Branding} {
		if v > 0 {
			active++
		}
	}
	if active >= 3 {
		out = append(out, "Demonstrates comprehensive digital professional presence")
	}

	return out
}
