// Copyright 2023 Northern.tech AS
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
package main

import (
	"runtime/debug"
)

// Set at link time:
// go build -ldflags "-X main.Tag=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Tag    string
	Commit string
	Branch string
)

// CreateVersionString returns the tag if the build was tagged, otherwise
// branch_commit, falling back to the module version recorded in the binary.
func CreateVersionString() string {
	switch {
	case Tag != "":
		return Tag
	case Commit != "" && Branch != "":
		return Branch + "_" + Commit
	case Commit != "":
		return Commit
	}
	return moduleVersion()
}

func moduleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "unknown"
	}
	return info.Main.Version
}
