package trend

import "github.com/matheuskafuri/hotwatch/internal/score"

// Record is one normalized trending item.
type Record struct {
	Rank         int
	Title        string
	DisplayScore string
	NumericScore int64
	Label        string
	Kind         score.Kind
	Link         string
}

// Dataset is the rank-sorted result of one fetch cycle.
type Dataset struct {
	Records []Record
	// Anomalies counts score fragments that had no digits to sort by.
	Anomalies int
}

func (d Dataset) Len() int { return len(d.Records) }

func (d Dataset) Empty() bool { return len(d.Records) == 0 }

// Top returns the first n records, or all of them when n <= 0.
func (d Dataset) Top(n int) Dataset {
	if n <= 0 || n >= len(d.Records) {
		return d
	}
	return Dataset{Records: d.Records[:n], Anomalies: d.Anomalies}
}

// Leader returns the highest ranked record.
func (d Dataset) Leader() (Record, bool) {
	if len(d.Records) == 0 {
		return Record{}, false
	}
	return d.Records[0], true
}
