package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFunnel(t *testing.T) {
	t.Run("stages accumulate downward", func(t *testing.T) {
		rows := []FunnelRow{
			{FromSource: "douyin", Status: 1, Total: 10},
			{FromSource: "douyin", Status: 3, Total: 4, Closed: 1},
			{FromSource: "douyin", Status: 5, Total: 2, Closed: 2},
		}

		funnels := BuildFunnel(rows)
		require.Len(t, funnels, 1)

		f := funnels[0]
		assert.Equal(t, "douyin", f.FromSource)
		assert.Equal(t, int64(16), f.Leads)
		assert.Equal(t, int64(6), f.Assigned)
		assert.Equal(t, int64(6), f.Converted)
		assert.Equal(t, int64(2), f.Appointed)
		assert.Equal(t, int64(2), f.Graduated)
		assert.Equal(t, int64(3), f.Closed)
	})

	t.Run("channels stay separate and ordered", func(t *testing.T) {
		rows := []FunnelRow{
			{FromSource: "weixin", Status: 1, Total: 3},
			{FromSource: "referral", Status: 4, Total: 1, Closed: 1},
			{FromSource: "weixin", Status: 2, Total: 2},
		}

		funnels := BuildFunnel(rows)
		require.Len(t, funnels, 2)

		assert.Equal(t, "weixin", funnels[0].FromSource)
		assert.Equal(t, int64(5), funnels[0].Leads)
		assert.Equal(t, int64(2), funnels[0].Assigned)

		assert.Equal(t, "referral", funnels[1].FromSource)
		assert.Equal(t, int64(1), funnels[1].Appointed)
		assert.Equal(t, int64(1), funnels[1].Closed)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildFunnel(nil))
	})
}
