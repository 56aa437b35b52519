// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

type MonitorInterface interface {
	GetService() string
	SetResponseTimeMetric(labels map[string]string, value float64) error
	SetDependencyAvailability(labels map[string]string, value float64) error
}
