// Copyright 2024 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package model

import (
	"time"
)

// DeviceConfig is one immutable, versioned configuration row for a
// device. The row with the highest version is the current configuration.
type DeviceConfig struct {
	ID        string                 `json:"id" bson:"_id"`
	DeviceID  string                 `json:"device_id" bson:"device_id"`
	Config    map[string]interface{} `json:"config" bson:"config"`
	Version   int64                  `json:"version" bson:"version"`
	CreatedTs time.Time              `json:"created_ts" bson:"created_ts"`
}
