package trend

import "strings"

// Filter keeps the records whose title contains keyword, case-sensitively.
// An empty keyword returns ds unchanged.
func Filter(ds Dataset, keyword string) Dataset {
	if keyword == "" {
		return ds
	}
	out := Dataset{Records: []Record{}, Anomalies: ds.Anomalies}
	for _, r := range ds.Records {
		if strings.Contains(r.Title, keyword) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}
