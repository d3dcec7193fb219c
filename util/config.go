// Copyright 2016, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"
	"runtime"
	"strconv"
)

// Environment variables
const (
	GVI_WORKER_COUNT  = "GVI_WORKER_COUNT"
	GVI_JOIN_PROPERTY = "GVI_JOIN_PROPERTY"
)

const defaultJoinProperty = "image_id"

// GetWorkerCount returns the scoring worker count from the GVI_WORKER_COUNT
// environment variable, defaulting to the host CPU count
func GetWorkerCount() int {
	workerCountStr, ok := os.LookupEnv(GVI_WORKER_COUNT)
	if !ok {
		return runtime.NumCPU()
	}
	workerCount, err := strconv.Atoi(workerCountStr)
	if err != nil || workerCount < 1 {
		LogAlert(&BasicLogContext{}, "Invalid worker count in environment: "+workerCountStr+". Using CPU count.")
		return runtime.NumCPU()
	}
	return workerCount
}

// GetJoinProperty returns the point feature property holding the image
// identifier, from the GVI_JOIN_PROPERTY environment variable
func GetJoinProperty() string {
	joinProperty, ok := os.LookupEnv(GVI_JOIN_PROPERTY)
	if !ok {
		LogInfo(&BasicLogContext{}, "Did not get explicit join property from the environment. Using default: "+defaultJoinProperty)
		return defaultJoinProperty
	}
	return joinProperty
}
