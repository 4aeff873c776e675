package analyzer

import "strings"

// CloseMatchConfidence is the fixed confidence attached to every close match.
const CloseMatchConfidence = 0.8

// AnalyzeCoverage matches schema paths against user headers.
//
// For each path, in schema order, the first header whose key equals the path's key is a match; failing that, the
// first header whose key contains or is contained in the path's key is a close match; otherwise the path is missing.
// Headers are scanned in column order and may satisfy more than one path.
func AnalyzeCoverage(paths, headers []string) (Coverage, HeaderMap) {
	cov := Coverage{
		Matched: []string{},
		Close:   []CloseMatch{},
		Missing: []string{},
	}
	hm := make(HeaderMap, len(paths))

	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = NormalizeHeader(h)
	}

	for _, path := range paths {
		target := NormalizeHeader(path)

		if i := indexOf(keys, func(k string) bool { return k == target }); i >= 0 {
			cov.Matched = append(cov.Matched, path)
			hm[path] = headers[i]
			continue
		}

		if i := indexOf(keys, func(k string) bool {
			return strings.Contains(target, k) || strings.Contains(k, target)
		}); i >= 0 {
			cov.Close = append(cov.Close, CloseMatch{
				Target:     path,
				Candidate:  headers[i],
				Confidence: CloseMatchConfidence,
			})
			hm[path] = headers[i]
			continue
		}

		cov.Missing = append(cov.Missing, path)
	}

	return cov, hm
}

func indexOf(keys []string, match func(string) bool) int {
	for i, k := range keys {
		if match(k) {
			return i
		}
	}
	return -1
}
