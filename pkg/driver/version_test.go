package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"desktop driver url",
			"https://us.download.nvidia.com/Windows/536.23/536.23-desktop-win10-win11-64bit-international-dch-whql.exe",
			"536.23",
		},
		{
			"notebook driver url",
			"https://us.download.nvidia.com/Windows/551.86/551.86-notebook-win10-win11-64bit-international-dch-whql.exe",
			"551.86",
		},
		{"no token", "https://example.com/driver.exe", VersionUnknown},
		{"short digits only", "https://example.com/12.34/driver.exe", VersionUnknown},
		{"empty", "", VersionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VersionFromURL(tt.url))
		})
	}
}

func TestVersionFromDriverMetadata(t *testing.T) {
	tests := []struct {
		name     string
		build    string
		revision string
		want     string
	}{
		{"typical", "15", "3623", "536.23"},
		{"newer series", "15", "5186", "551.86"},
		{"short revision", "15", "36", VersionUnknown},
		{"empty", "", "", VersionUnknown},
		{"single char", "1", "", VersionUnknown},
		{"whitespace tolerated", " 15 ", " 3623 ", "536.23"},
		{"non numeric", "ab", "cdef", VersionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VersionFromDriverMetadata(tt.build, tt.revision))
		})
	}
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("536.23"))
	assert.False(t, IsKnown(VersionUnknown))
	assert.False(t, IsKnown(""))
}
