// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package entry holds the data model shared by every stage of an edit round.

	Source ──edit──▶ Destination
	   └──────┬───────────┘
	      Operation

A Source is captured once during collection and never changes afterwards.
A Destination is derived from one edited line. An Operation pairs the two and
exists only when they differ.
*/
package entry
