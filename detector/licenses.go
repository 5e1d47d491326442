package detector

import (
	"strings"
	"sync"

	"github.com/FastFilter/xorfilter"
	"github.com/cespare/xxhash/v2"
	"github.com/cloudflare/ahocorasick"
)

// licenseRule binds a license key to the phrases identifying it. Text
// phrases are taken from the license body itself; reference phrases are
// weaker pointers such as the canonical license URL.
type licenseRule struct {
	key        string
	spdx       string
	identifier string
	// supersedes lists rule keys to drop when this rule also matched,
	// e.g. a 3-clause BSD match subsumes the shared 2-clause preamble.
	supersedes []string
	text       []string
	references []string
}

const (
	textScore      = 100.0
	referenceScore = 90.0
)

var licenseRules = []licenseRule{
	{
		key:        "apache-2.0",
		spdx:       "Apache-2.0",
		identifier: "apache-2.0.LICENSE",
		text: []string{
			"licensed under the apache license version 2 0",
			"apache license version 2 0 january 2004",
		},
		references: []string{
			"www apache org licenses license 2 0",
		},
	},
	{
		key:        "mit",
		spdx:       "MIT",
		identifier: "mit.LICENSE",
		text: []string{
			"permission is hereby granted free of charge to any person obtaining a copy of this software",
		},
	},
	{
		key:        "bsd-simplified",
		spdx:       "BSD-2-Clause",
		identifier: "bsd-simplified.LICENSE",
		text: []string{
			"redistribution and use in source and binary forms with or without modification are permitted provided that the following conditions are met",
		},
	},
	{
		key:        "bsd-new",
		spdx:       "BSD-3-Clause",
		identifier: "bsd-new.LICENSE",
		supersedes: []string{"bsd-simplified"},
		text: []string{
			"neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products",
		},
	},
	{
		key:        "gpl-2.0",
		spdx:       "GPL-2.0-only",
		identifier: "gpl-2.0.LICENSE",
		text: []string{
			"gnu general public license as published by the free software foundation either version 2",
			"gnu general public license version 2 june 1991",
		},
	},
	{
		key:        "gpl-3.0",
		spdx:       "GPL-3.0-only",
		identifier: "gpl-3.0.LICENSE",
		text: []string{
			"gnu general public license as published by the free software foundation either version 3",
			"gnu general public license version 3 29 june 2007",
		},
	},
	{
		key:        "lgpl-2.1",
		spdx:       "LGPL-2.1-only",
		identifier: "lgpl-2.1.LICENSE",
		text: []string{
			"gnu lesser general public license as published by the free software foundation either version 2 1",
			"gnu lesser general public license version 2 1 february 1999",
		},
	},
	{
		key:        "mpl-2.0",
		spdx:       "MPL-2.0",
		identifier: "mpl-2.0.LICENSE",
		text: []string{
			"this source code form is subject to the terms of the mozilla public license v 2 0",
			"mozilla public license version 2 0 1 definitions",
		},
	},
	{
		key:        "isc",
		spdx:       "ISC",
		identifier: "isc.LICENSE",
		text: []string{
			"permission to use copy modify and or distribute this software for any purpose with or without fee is hereby granted",
		},
	},
	{
		key:        "cc-by-2.0",
		spdx:       "CC-BY-2.0",
		identifier: "cc-by-2.0.LICENSE",
		text: []string{
			"creative commons attribution 2 0",
		},
		references: []string{
			"creativecommons org licenses by 2 0",
		},
	},
	{
		key:        "cc0-1.0",
		spdx:       "CC0-1.0",
		identifier: "cc0-1.0.LICENSE",
		references: []string{
			"creativecommons org publicdomain zero 1 0",
		},
	},
	{
		key:        "unlicense",
		spdx:       "Unlicense",
		identifier: "unlicense.LICENSE",
		text: []string{
			"this is free and unencumbered software released into the public domain",
		},
	},
}

// triggerTokens gate the full phrase matching: content containing none of
// them cannot match any rule.
var triggerTokens = []string{
	"license", "licence", "apache", "mit", "bsd", "gpl", "lgpl",
	"mozilla", "creative", "creativecommons", "unencumbered", "isc",
	"copyleft", "redistribution", "permission",
}

type phraseEntry struct {
	rule  int
	text  string
	score float64
}

type licenseCorpus struct {
	matcher *ahocorasick.Matcher
	phrases []phraseEntry
	tokens  *xorfilter.Xor8
}

var (
	corpusOnce sync.Once
	corpus     *licenseCorpus
)

func buildCorpus() *licenseCorpus {
	var phrases []phraseEntry
	var dictionary []string
	for i, rule := range licenseRules {
		for _, text := range rule.text {
			phrases = append(phrases, phraseEntry{rule: i, text: text, score: textScore})
			dictionary = append(dictionary, text)
		}
		for _, ref := range rule.references {
			phrases = append(phrases, phraseEntry{rule: i, text: ref, score: referenceScore})
			dictionary = append(dictionary, ref)
		}
	}

	hashes := make([]uint64, len(triggerTokens))
	for i, token := range triggerTokens {
		hashes[i] = xxhash.Sum64String(token)
	}
	tokens, err := xorfilter.Populate(hashes)
	if err != nil {
		// Only possible for duplicate keys, which the static token list
		// does not contain.
		panic(err)
	}

	return &licenseCorpus{
		matcher: ahocorasick.NewStringMatcher(dictionary),
		phrases: phrases,
		tokens:  tokens,
	}
}

func getCorpus() *licenseCorpus {
	corpusOnce.Do(func() {
		corpus = buildCorpus()
	})
	return corpus
}

// normalize lowercases the content and folds every run of non-alphanumeric
// bytes into a single space. The returned line table maps each byte of the
// normalized text to its 1-based source line.
func normalize(content []byte) (string, []int) {
	var b strings.Builder
	b.Grow(len(content))
	lines := make([]int, 0, len(content))
	line := 1
	lastSpace := true
	for _, c := range content {
		if c == '\n' {
			line++
		}
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
			lines = append(lines, line)
			lastSpace = false
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
			lines = append(lines, line)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lines = append(lines, line)
				lastSpace = true
			}
		}
	}
	return b.String(), lines
}

func (c *licenseCorpus) mayContainLicense(normalized string) bool {
	start := -1
	for i := 0; i <= len(normalized); i++ {
		atEnd := i == len(normalized)
		if !atEnd && normalized[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if c.tokens.Contains(xxhash.Sum64String(normalized[start:i])) {
				return true
			}
			start = -1
		}
	}
	return false
}

func detectLicenses(content []byte) *Licenses {
	result := &Licenses{}
	normalized, lineTable := normalize(content)
	if normalized == "" {
		return result
	}

	c := getCorpus()
	if !c.mayContainLicense(normalized) {
		return result
	}

	hits := c.matcher.MatchThreadSafe([]byte(normalized))
	if len(hits) == 0 {
		return result
	}

	type ruleHit struct {
		first   int
		matches []LicenseMatch
	}
	byRule := make(map[int]*ruleHit)
	matchedLength := 0

	for _, hit := range hits {
		entry := c.phrases[hit]
		offset := strings.Index(normalized, entry.text)
		if offset < 0 {
			continue
		}
		end := offset + len(entry.text)
		rule := licenseRules[entry.rule]
		match := LicenseMatch{
			Score:                 entry.score,
			StartLine:             lineTable[offset],
			EndLine:               lineTable[end-1],
			MatchedLength:         len(strings.Fields(entry.text)),
			LicenseExpression:     rule.key,
			LicenseExpressionSPDX: rule.spdx,
			RuleIdentifier:        rule.identifier,
		}
		matchedLength += len(entry.text)

		if existing, ok := byRule[entry.rule]; ok {
			existing.matches = append(existing.matches, match)
			if offset < existing.first {
				existing.first = offset
			}
		} else {
			byRule[entry.rule] = &ruleHit{first: offset, matches: []LicenseMatch{match}}
		}
	}
	if len(byRule) == 0 {
		return result
	}

	// Drop rules subsumed by a more specific match.
	for idx := range byRule {
		for _, superseded := range licenseRules[idx].supersedes {
			for otherIdx := range byRule {
				if licenseRules[otherIdx].key == superseded {
					delete(byRule, otherIdx)
				}
			}
		}
	}

	// Order detections by first occurrence in the file.
	order := make([]int, 0, len(byRule))
	for idx := range byRule {
		order = append(order, idx)
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if byRule[order[j]].first < byRule[order[i]].first {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	var keys, spdx []string
	for _, idx := range order {
		rule := licenseRules[idx]
		keys = append(keys, rule.key)
		spdx = append(spdx, rule.spdx)
		result.Detections = append(result.Detections, LicenseDetection{
			LicenseExpression:     rule.key,
			LicenseExpressionSPDX: rule.spdx,
			Matches:               byRule[idx].matches,
		})
	}
	result.DetectedLicenseExpression = strings.Join(keys, " AND ")
	result.DetectedLicenseExpressionSPDX = strings.Join(spdx, " AND ")
	result.PercentageOfLicenseText = float64(matchedLength) / float64(len(normalized)) * 100
	return result
}
