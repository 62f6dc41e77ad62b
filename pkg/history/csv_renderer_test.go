package history

import (
	"testing"
)

func TestCsvRendererImpl_RenderHistory(t *testing.T) {
	type args struct {
		summary HistorySummary
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "RenderHistory with valid data",
			args: args{
				summary: HistorySummary{
					ProjectName: "Novel",
					Target:      10000,
					Entries: []DailyHistory{
						{Date: "2026-03-02", Words: 500, Cumulative: 500, WritingDay: true},
						{Date: "2026-03-07", Words: 300, Cumulative: 800, WritingDay: false},
					},
					TotalWords: 800,
				},
			},
			want: "Date,Words,Cumulative,Writing day\n" +
				"2026-03-02,500,500,yes\n" +
				"2026-03-07,300,800,no\n" +
				"Total,800,,\n",
		},
		{
			name: "RenderHistory with empty history",
			args: args{
				summary: HistorySummary{
					ProjectName: "Novel",
					Target:      10000,
				},
			},
			want: "Date,Words,Cumulative,Writing day\n" +
				"Total,0,,\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewCsvRenderer()
			if got, _ := renderer.RenderHistory(tt.args.summary); got != tt.want {
				t.Errorf("RenderHistory() = %v, want %v", got, tt.want)
			}
		})
	}
}
