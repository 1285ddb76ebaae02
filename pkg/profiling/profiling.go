package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"

	"github.com/testpick/testpick-api/config"
	"github.com/testpick/testpick-api/pkg/logger"
)

var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileGoroutines,
}

var profileTypeMap = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// InitProfiler starts continuous profiling when enabled in config.
func InitProfiler(cfg config.ProfilingConfig, serviceName, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}
	if cfg.UploadIntervalSeconds <= 0 {
		cfg.UploadIntervalSeconds = 15
	}

	profileTypes, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	applicationName := fmt.Sprintf("%s{environment=%s}", serviceName, environment)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: applicationName,
		ServerAddress:   cfg.Endpoint,
		UploadRate:      time.Duration(cfg.UploadIntervalSeconds) * time.Second,
		ProfileTypes:    profileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", applicationName),
		zap.String("endpoint", cfg.Endpoint),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultProfileTypes, nil
	}

	var types []pyroscope.ProfileType
	seen := make(map[pyroscope.ProfileType]struct{})

	for _, raw := range strings.Split(value, ",") {
		key := strings.ToLower(strings.TrimSpace(raw))
		mapped, ok := profileTypeMap[key]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", key)
		}
		for _, t := range mapped {
			if _, exists := seen[t]; exists {
				continue
			}
			types = append(types, t)
			seen[t] = struct{}{}
		}
	}

	if len(types) == 0 {
		return defaultProfileTypes, nil
	}

	return types, nil
}
