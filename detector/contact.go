package detector

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

var (
	copyrightPattern = regexp.MustCompile(`(?i)copyright\s*(?:©|\(c\))?\s*(?:©|\(c\))?[\s,:]*((?:\d{4}(?:\s*[-,]\s*\d{4})*[\s,]*)?)(?:by\s+)?([^\n]*)`)
	yearsPattern     = regexp.MustCompile(`^\s*\d{4}(\s*[-,]\s*\d{4})*\s*[,.]?\s*`)
	emailPattern     = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	urlPattern       = regexp.MustCompile(`https?://[^\s<>"'\)\]]+`)
)

// trimHolder strips trailing punctuation and license boilerplate that tends
// to follow the holder on the same line.
func trimHolder(s string) string {
	for _, stop := range []string{". all rights reserved", ", all rights reserved", " all rights reserved"} {
		if idx := strings.Index(strings.ToLower(s), stop); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.Trim(s, " \t.,;:*/#-")
}

func detectCopyrights(content []byte) *Copyrights {
	result := &Copyrights{}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		m := copyrightPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		statement := strings.TrimSpace(m[0])
		statement = strings.Trim(statement, " \t.,;:*/#")
		if statement == "" {
			continue
		}
		result.Copyrights = append(result.Copyrights, Copyright{
			Copyright: statement,
			StartLine: line,
			EndLine:   line,
		})
		holder := trimHolder(yearsPattern.ReplaceAllString(m[2], ""))
		if holder != "" {
			result.Holders = append(result.Holders, Holder{
				Holder:    holder,
				StartLine: line,
				EndLine:   line,
			})
		}
	}
	return result
}

func detectEmails(content []byte, limit int) *Emails {
	result := &Emails{}
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, match := range emailPattern.FindAllString(scanner.Text(), -1) {
			if seen[match] {
				continue
			}
			seen[match] = true
			result.Emails = append(result.Emails, Email{
				Email:     match,
				StartLine: line,
				EndLine:   line,
			})
			if len(result.Emails) >= limit {
				return result
			}
		}
	}
	return result
}

func detectURLs(content []byte, limit int) *URLs {
	result := &URLs{}
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, match := range urlPattern.FindAllString(scanner.Text(), -1) {
			match = strings.TrimRight(match, ".,;")
			if seen[match] {
				continue
			}
			seen[match] = true
			result.URLs = append(result.URLs, URL{
				URL:       match,
				StartLine: line,
				EndLine:   line,
			})
			if len(result.URLs) >= limit {
				return result
			}
		}
	}
	return result
}
