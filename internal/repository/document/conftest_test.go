package document

import "context"

// mockStore stubs the store consumer interface with function fields.
type mockStore struct {
	put    func(ctx context.Context, key string, fields map[string]string) error
	get    func(ctx context.Context, key string) (map[string]string, error)
	del    func(ctx context.Context, key string) error
	exists func(ctx context.Context, key string) (bool, error)
	count  func(ctx context.Context) (int, error)
}

func (m *mockStore) Put(ctx context.Context, key string, fields map[string]string) error {
	return m.put(ctx, key, fields)
}

func (m *mockStore) Get(ctx context.Context, key string) (map[string]string, error) {
	return m.get(ctx, key)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.del(ctx, key)
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	return m.exists(ctx, key)
}

func (m *mockStore) Count(ctx context.Context) (int, error) {
	return m.count(ctx)
}
