package storefrontclient

const cartFragment = `
fragment CartFields on Cart {
  id
  checkoutUrl
  note
  totalQuantity
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
    totalTaxAmount { amount currencyCode }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        cost {
          totalAmount { amount currencyCode }
        }
        merchandise {
          ... on ProductVariant {
            id
            title
            price { amount currencyCode }
            selectedOptions { name value }
            product {
              id
              title
              description
              vendor
              handle
              images(first: 1) {
                edges { node { url altText width height } }
              }
            }
          }
        }
      }
    }
  }
}
`

const userErrorFields = `userErrors { code field message }`

const createCartMutation = `
mutation CreateCart($lineItems: [CartLineInput!]) {
  cartCreate(input: { lines: $lineItems }) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
` + cartFragment

const getCartQuery = `
query GetCart($cartId: ID!) {
  cart(id: $cartId) { ...CartFields }
}
` + cartFragment

const addToCartMutation = `
mutation AddToCart($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
` + cartFragment

const updateCartItemsMutation = `
mutation UpdateCartItems($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
` + cartFragment

const removeFromCartMutation = `
mutation RemoveFromCart($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { ...CartFields }
    ` + userErrorFields + `
  }
}
` + cartFragment

const moneyRangeFields = `
priceRange { minVariantPrice { amount currencyCode } }
compareAtPriceRange { minVariantPrice { amount currencyCode } }
`

const optionFields = `
options {
  name
  optionValues { id name swatch { color } }
}
`

const variantFields = `
variants(first: 100) {
  edges {
    node {
      id
      availableForSale
      compareAtPrice { amount currencyCode }
      price { amount currencyCode }
      selectedOptions { name value }
    }
  }
}
`

const getProductByHandleQuery = `
query GetProductByHandle($handle: String!) {
  product(handle: $handle) {
    collections(first: 100) { edges { node { id title } } }
    id
    title
    handle
    description
    descriptionHtml
    productType
    tags
    vendor
    featuredImage { url width height altText }
    ` + moneyRangeFields + `
    images(first: 10) { edges { node { url altText width height } } }
    ` + optionFields + variantFields + `
    seo { title description }
  }
}
`

const getCollectionByIDWithPaginationQuery = `
query GetCollectionById(
  $id: ID!
  $first: Int!
  $after: String
  $sortKey: ProductCollectionSortKeys
  $reverse: Boolean
  $filters: [ProductFilter!]
) {
  collection(id: $id) {
    products(first: $first, after: $after, sortKey: $sortKey, reverse: $reverse, filters: $filters) {
      edges {
        node {
          id
          title
          vendor
          handle
          ` + moneyRangeFields + `
          images(first: 2) { edges { node { url altText } } }
          featuredImage { url }
          ` + optionFields + variantFields + `
        }
        cursor
      }
      pageInfo { hasNextPage endCursor hasPreviousPage startCursor }
    }
  }
}
`

const getProductsByIDsQuery = `
query GetProductsByIds($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      title
      handle
      ` + moneyRangeFields + `
      images(first: 1) { edges { node { url altText } } }
      featuredImage { url }
      ` + optionFields + `
    }
  }
}
`

const getMetaobjectsQuery = `
query GetMetaobjects($type: String!) {
  metaobjects(type: $type, first: 250) {
    edges {
      node {
        id
        handle
        fields { key value }
      }
    }
  }
}
`

const customerAccessTokenCreateMutation = `
mutation CustomerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerAccessToken { accessToken expiresAt }
    customerUserErrors { code field message }
  }
}
`
