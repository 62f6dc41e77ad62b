package history

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderHistory(summary HistorySummary) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (r *CsvRendererImpl) RenderHistory(summary HistorySummary) (string, error) {
	data := make([][]string, 0, len(summary.Entries)+2)
	data = append(data, []string{"Date", "Words", "Cumulative", "Writing day"})

	for _, entry := range summary.Entries {
		writingDay := "yes"
		if !entry.WritingDay {
			writingDay = "no"
		}
		data = append(data, []string{
			entry.Date,
			strconv.Itoa(entry.Words),
			strconv.Itoa(entry.Cumulative),
			writingDay,
		})
	}
	data = append(data, []string{"Total", strconv.Itoa(summary.TotalWords), "", ""})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
