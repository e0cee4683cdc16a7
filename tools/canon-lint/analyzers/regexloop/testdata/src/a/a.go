package a

import "regexp"

func scanTranscriptPerLine(lines []string) {
	for _, line := range lines {
		re := regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`) // want "regexp.MustCompile called inside loop"
		_ = re.FindAllString(line, -1)
	}
}

func compilePatternPerLine(lines []string, pattern string) {
	for _, line := range lines {
		re, _ := regexp.Compile(pattern) // want "regexp.Compile called inside loop"
		_ = re.MatchString(line)
	}
}

func scanTranscriptOnce(lines []string) {
	re := regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	for _, line := range lines {
		_ = re.FindAllString(line, -1)
	}
}

var speakerRe = regexp.MustCompile(`^\[\d{2}:\d{2}\] (\w+):`)

func speakerPerLine(lines []string) {
	for _, line := range lines {
		_ = speakerRe.FindStringSubmatch(line)
	}
}
