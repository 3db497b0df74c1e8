package registry

import "github.com/pixevo/videogen-api/internal/videogen"

// Default returns the production model catalog. Entries are declared at
// build time; deactivating a model is a config change here, not a
// runtime mutation.
func Default() *Registry {
	return NewRegistry(
		videogen.ModelConfig{
			ID:                 "pixverse-v5",
			Name:               "PixVerse V5",
			Provider:           videogen.ProviderReplicate,
			ProviderModelID:    "pixverse/pixverse-v5",
			Durations:          []int{5, 8},
			AspectRatios:       []string{"16:9", "9:16", "1:1"},
			Resolutions:        []string{"360p", "540p", "720p", "1080p"},
			SupportsImageInput: true,
			ProcessingTime:     videogen.ProcessingTime{Min: 60, Max: 240},
			CreditsPerDuration: map[int]float64{5: 30, 8: 45},
			Active:             true,
		},
		videogen.ModelConfig{
			ID:                 "seedance-1-pro",
			Name:               "Seedance 1.0 Pro",
			Provider:           videogen.ProviderReplicate,
			ProviderModelID:    "bytedance/seedance-1-pro",
			Durations:          []int{5, 10},
			AspectRatios:       []string{"16:9", "9:16", "1:1", "4:3"},
			Resolutions:        []string{"480p", "720p", "1080p"},
			SupportsImageInput: true,
			ProcessingTime:     videogen.ProcessingTime{Min: 90, Max: 300},
			CreditsPerDuration: map[int]float64{5: 40, 10: 75},
			Active:             true,
		},
		videogen.ModelConfig{
			ID:                 "hunyuan-video",
			Name:               "Hunyuan Video",
			Provider:           videogen.ProviderReplicate,
			ProviderModelID:    "tencent/hunyuan-video",
			Durations:          []int{5},
			AspectRatios:       []string{"16:9", "9:16"},
			Resolutions:        []string{"720p"},
			ProcessingTime:     videogen.ProcessingTime{Min: 120, Max: 480},
			CreditsPerDuration: map[int]float64{5: 25},
			Active:             false, // withdrawn pending provider capacity
		},
		videogen.ModelConfig{
			ID:                 "kling-v2.1",
			Name:               "Kling 2.1",
			Provider:           videogen.ProviderPiAPI,
			ProviderModelID:    "kling",
			Durations:          []int{5, 10},
			AspectRatios:       []string{"16:9", "9:16", "1:1"},
			Resolutions:        []string{"720p", "1080p"},
			SupportsImageInput: true,
			ProcessingTime:     videogen.ProcessingTime{Min: 120, Max: 360},
			CreditsPerDuration: map[int]float64{5: 35, 10: 65},
			Active:             true,
		},
		videogen.ModelConfig{
			ID:                 "hailuo-02",
			Name:               "Hailuo 02",
			Provider:           videogen.ProviderPiAPI,
			ProviderModelID:    "hailuo",
			Durations:          []int{6, 10},
			AspectRatios:       []string{"16:9", "9:16", "1:1"},
			Resolutions:        []string{"768p", "1080p"},
			SupportsImageInput: true,
			ProcessingTime:     videogen.ProcessingTime{Min: 120, Max: 420},
			CreditsPerDuration: map[int]float64{6: 40, 10: 70},
			Active:             true,
		},
		videogen.ModelConfig{
			ID:                 "gen3a-turbo",
			Name:               "Runway Gen-3 Alpha Turbo",
			Provider:           videogen.ProviderRunway,
			ProviderModelID:    "gen3a_turbo",
			Durations:          []int{5, 10},
			AspectRatios:       []string{"16:9", "9:16"},
			Resolutions:        []string{"720p"},
			SupportsImageInput: true,
			ProcessingTime:     videogen.ProcessingTime{Min: 60, Max: 180},
			CreditsPerDuration: map[int]float64{5: 50, 10: 95},
			Active:             true,
		},
		videogen.ModelConfig{
			ID:                 "gen4-turbo",
			Name:               "Runway Gen-4 Turbo",
			Provider:           videogen.ProviderRunway,
			ProviderModelID:    "gen4_turbo",
			Durations:          []int{5, 10},
			AspectRatios:       []string{"16:9", "9:16", "1:1", "4:3", "3:4", "21:9"},
			Resolutions:        []string{"720p"},
			SupportsImageInput: true,
			ProcessingTime:     videogen.ProcessingTime{Min: 60, Max: 180},
			CreditsPerDuration: map[int]float64{5: 60, 10: 110},
			Active:             true,
			Premium:            true,
		},
		videogen.ModelConfig{
			ID:                 "kling-2.5-turbo",
			Name:               "Kling 2.5 Turbo Pro",
			Provider:           videogen.ProviderFal,
			ProviderModelID:    "fal-ai/kling-video/v2.5-turbo/pro",
			Durations:          []int{5, 10},
			AspectRatios:       []string{"16:9", "9:16", "1:1"},
			Resolutions:        []string{"720p", "1080p"},
			SupportsImageInput: true,
			ProcessingTime:     videogen.ProcessingTime{Min: 90, Max: 300},
			CreditsPerDuration: map[int]float64{5: 45, 10: 85},
			Active:             true,
		},
		videogen.ModelConfig{
			ID:                 "veo-3",
			Name:               "Veo 3",
			Provider:           videogen.ProviderFal,
			ProviderModelID:    "fal-ai/veo3",
			Durations:          []int{8},
			AspectRatios:       []string{"16:9", "9:16"},
			Resolutions:        []string{"720p", "1080p"},
			SupportsAudio:      true,
			ProcessingTime:     videogen.ProcessingTime{Min: 120, Max: 600},
			CreditsPerDuration: map[int]float64{8: 150},
			Active:             true,
			Premium:            true,
		},
	)
}
