// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// Every invocation logs in, runs one command against the CRM server through
// the [adapter.ServerAdapter] and logs out again. Results are printed as
// indented JSON.
package client
