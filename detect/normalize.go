package detect

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/fwojciec/pagewatch"
)

// perlStyleRegex recognizes rules written as /pattern/flags.
var perlStyleRegex = regexp.MustCompile(`(?i)^/(.*?)/([a-z]*)$`)

// ParsePerlRegex compiles a /pattern/flags rule. Without flags the pattern is
// case-insensitive; unsupported flags are dropped. The second return value
// is false when rule is not slash-enclosed.
func ParsePerlRegex(rule string) (*regexp.Regexp, bool, error) {
	m := perlStyleRegex.FindStringSubmatch(rule)
	if m == nil {
		return nil, false, nil
	}

	var flags strings.Builder
	for _, f := range strings.ToLower(m[2]) {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(flags.String(), f) {
				flags.WriteRune(f)
			}
		}
	}
	prefix := "(?i)"
	if m[2] != "" {
		prefix = ""
		if flags.Len() > 0 {
			prefix = "(?" + flags.String() + ")"
		}
	}

	re, err := regexp.Compile(prefix + m[1])
	if err != nil {
		return nil, true, pagewatch.Errorf(pagewatch.EINVALID, "invalid regular expression %q: %v", rule, err)
	}
	return re, true, nil
}

// lineMatcher tests lines against a mix of literal and regex rules.
// Literals are matched case-insensitively.
type lineMatcher struct {
	literals *ahocorasick.Matcher
	regexes  []*regexp.Regexp
}

// newLineMatcher returns nil when rules holds no usable entries.
func newLineMatcher(rules []string) (*lineMatcher, error) {
	var words []string
	var regexes []*regexp.Regexp
	for _, rule := range rules {
		if strings.TrimSpace(rule) == "" {
			continue
		}
		re, ok, err := ParsePerlRegex(rule)
		if err != nil {
			return nil, err
		}
		if ok {
			regexes = append(regexes, re)
			continue
		}
		words = append(words, strings.ToLower(strings.TrimSpace(rule)))
	}
	if len(words) == 0 && len(regexes) == 0 {
		return nil, nil
	}

	m := &lineMatcher{regexes: regexes}
	if len(words) > 0 {
		m.literals = ahocorasick.NewStringMatcher(words)
	}
	return m, nil
}

func (m *lineMatcher) match(line string) bool {
	if m.literals != nil && m.literals.Contains([]byte(strings.ToLower(line))) {
		return true
	}
	for _, re := range m.regexes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// StripIgnoreText drops every line matching one of rules, along with blank
// lines, and joins the rest with "\n". With no usable rules text is returned
// unchanged.
func StripIgnoreText(text string, rules []string) (string, error) {
	m, err := newLineMatcher(rules)
	if err != nil || m == nil {
		return text, err
	}

	var kept []string
	for _, line := range pagewatch.SplitLines(text) {
		if strings.TrimSpace(line) == "" || m.match(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), nil
}

// containsMatch reports whether any line of text matches one of rules.
// The second return value is false when rules holds no usable entries.
func containsMatch(text string, rules []string) (bool, bool, error) {
	m, err := newLineMatcher(rules)
	if err != nil || m == nil {
		return false, false, err
	}
	for _, line := range pagewatch.SplitLines(text) {
		if m.match(line) {
			return true, true, nil
		}
	}
	return false, true, nil
}

// Blocked reports whether a detected change must be suppressed. Configured
// trigger rules block unless some line matches one of them; any line
// matching a block rule blocks unconditionally.
func Blocked(text string, trigger, block []string) (bool, error) {
	blocked := false

	found, ok, err := containsMatch(text, trigger)
	if err != nil {
		return false, err
	}
	if ok && !found {
		blocked = true
	}

	found, _, err = containsMatch(text, block)
	if err != nil {
		return false, err
	}
	if found {
		blocked = true
	}
	return blocked, nil
}

// ExtractText replaces text with every match of rules, in rule order, each
// followed by "\n". Regex matches with capture groups contribute their
// groups concatenated. Literal rules match case-insensitively.
func ExtractText(text string, rules []string) (string, error) {
	var b strings.Builder
	for _, rule := range rules {
		re, ok, err := ParsePerlRegex(rule)
		if err != nil {
			return "", err
		}
		if !ok {
			if strings.TrimSpace(rule) == "" {
				continue
			}
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(rule))
		}

		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) == 1 {
				b.WriteString(m[0])
			} else {
				for _, g := range m[1:] {
					b.WriteString(g)
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
