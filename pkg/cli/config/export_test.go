package config

func NewPolicyForTest(filePath string) *Policy {
	return &Policy{filePath: filePath}
}

func NewBackendForTest(url, token string) *Backend {
	return &Backend{url: url, token: token, timeout: 0}
}
