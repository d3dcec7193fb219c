// Copyright 2019, RadiantBlue Technologies, Inc.
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

package imagery

import (
	"github.com/pyneet/street-view-green-view/util"
)

// Context is the context for an imagery scoring operation
type Context struct {
	sessionID string
}

// AppName returns the name of the application
func (c *Context) AppName() string {
	return "street-view-green-view"
}

// SessionID returns a unique session ID
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns the root directory for this application's logs
func (c *Context) LogRootDir() string {
	return "street-view-green-view"
}
