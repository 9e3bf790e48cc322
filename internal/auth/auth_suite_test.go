// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package auth_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

func TestAuthScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Submission Suite")
}
