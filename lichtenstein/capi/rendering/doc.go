// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package rendering writes command API responses.

Successful responses are JSON documents. Failed requests are answered with a
model.ErrorResponse whose errorType is one of the ErrorType constants, so
clients can branch on the type without parsing the message.
*/
package rendering
