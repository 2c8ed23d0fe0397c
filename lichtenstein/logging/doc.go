// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
lichtensteind emits the following kinds of logs:

1. Internal logs: the server's own application logs written to stderr through logrus.
2. Pipeline state dumps: the render plan, printed at debug level on request.
3. Access logs: one debug line per command API request.

Only internal logs are configurable. The level is set once during startup with
SetLogLevel, before the pipeline starts, so that messages emitted during
initialization already honour it.
*/
package logging
