package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "dạng ngắn youtu.be", url: "https://youtu.be/abc123", want: "abc123"},
		{name: "youtu.be kèm query", url: "https://youtu.be/abc123?t=10", want: "abc123"},
		{name: "dạng watch", url: "https://www.youtube.com/watch?v=xyz789", want: "xyz789"},
		{name: "watch kèm tham số khác", url: "https://www.youtube.com/watch?v=xyz789&t=30", want: "xyz789"},
		{name: "không phải youtube", url: "https://example.com/video", wantErr: true},
		{name: "watch thiếu id", url: "https://www.youtube.com/watch?v=", wantErr: true},
		{name: "rỗng", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractYouTubeID(tt.url)
			if tt.wantErr {
				var reqErr *RequestError
				require.ErrorAs(t, err, &reqErr)
				assert.Equal(t, ReasonInvalidReference, reqErr.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
